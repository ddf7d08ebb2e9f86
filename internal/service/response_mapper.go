package service

import (
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/entity"
	"llm-chat-be/pkg/llm"
)

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		Id:        c.Id,
		Title:     c.Title,
		UserId:    c.UserId,
		Provider:  string(c.Provider),
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	metadata := dto.MessageMetadataDTO{
		Images: m.Metadata.Images,
		Usage:  toUsageDTO(m.Metadata.Usage),
	}
	for _, a := range m.Metadata.Attachments {
		metadata.Attachments = append(metadata.Attachments, dto.AttachmentDTO{
			Name:     a.Name,
			MimeType: a.MimeType,
			Content:  a.Content,
		})
	}

	return &dto.MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Role:           string(m.Role),
		Content:        m.Content,
		Metadata:       metadata,
		CreatedAt:      m.CreatedAt,
	}
}

func toUsageDTO(u *llm.Usage) *dto.UsageDTO {
	if u == nil {
		return nil
	}
	return &dto.UsageDTO{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

func toApiKeyResponse(k *entity.ApiKey) *dto.ApiKeyResponse {
	return &dto.ApiKeyResponse{
		Id:        k.Id,
		UserId:    k.UserId,
		Provider:  string(k.Provider),
		KeyValue:  dto.MaskKey(k.KeyValue),
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
	}
}
