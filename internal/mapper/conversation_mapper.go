package mapper

import (
	"encoding/json"

	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/model"
	"llm-chat-be/pkg/llm"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// Conversation Mappers

func (m *ConversationMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		Provider:  llm.Provider(c.Provider),
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ConversationMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		Provider:  string(c.Provider),
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Message Mappers

func (m *ConversationMapper) MessageToEntity(msg *model.Message) (*entity.Message, error) {
	if msg == nil {
		return nil, nil
	}

	var metadata entity.MessageMetadata
	if len(msg.Metadata) > 0 {
		if err := json.Unmarshal(msg.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           entity.MessageRole(msg.Role),
		Content:        msg.Content,
		Metadata:       metadata,
		CreatedAt:      msg.CreatedAt,
	}, nil
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) (*model.Message, error) {
	if msg == nil {
		return nil, nil
	}

	metadata, err := json.Marshal(msg.Metadata)
	if err != nil {
		return nil, err
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           string(msg.Role),
		Content:        msg.Content,
		Metadata:       datatypes.JSON(metadata),
		CreatedAt:      msg.CreatedAt,
	}, nil
}

func (m *ConversationMapper) MessagesToEntities(msgs []*model.Message) ([]*entity.Message, error) {
	out := make([]*entity.Message, 0, len(msgs))
	for _, msg := range msgs {
		e, err := m.MessageToEntity(msg)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
