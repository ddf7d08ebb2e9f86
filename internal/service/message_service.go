package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"llm-chat-be/internal/constant"
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/repository/contract"
	"llm-chat-be/internal/repository/unitofwork"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type IMessageService interface {
	// Send stores the user turn, asks the conversation's provider for a reply and
	// stores that too. Failures after the user turn is stored carry it as error data.
	Send(ctx context.Context, userId, conversationId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Update(ctx context.Context, userId, conversationId, messageId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error)
	Delete(ctx context.Context, userId, conversationId, messageId uuid.UUID) error
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	gateway          llm.Gateway
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	gateway llm.Gateway,
	publisherService IPublisherService,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		gateway:          gateway,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *messageService) Send(ctx context.Context, userId, conversationId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("content is required")
	}
	images, err := normalizeImages(req.Images)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Conversation
	conversation, err := findOwnedConversation(ctx, uow, userId, conversationId)
	if err != nil {
		return nil, err
	}
	if !conversation.Provider.Valid() {
		return nil, apperror.UnsupportedProvider(string(conversation.Provider))
	}

	// 2. User turn, committed on its own
	userMessage := &entity.Message{
		ConversationId: conversation.Id,
		Role:           entity.MessageRoleUser,
		Content:        req.Content,
		Metadata: entity.MessageMetadata{
			Images:      images,
			Attachments: toAttachments(req.Attachments),
		},
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		if errors.Is(err, contract.ErrConversationNotFound) {
			return nil, apperror.NotFound("Conversation not found")
		}
		return nil, err
	}
	failureData := dto.SendFailureData{UserMessage: toMessageResponse(userMessage)}

	// 3. Credential
	apiKey, err := uow.ApiKeyRepository().FindActive(ctx, userId, conversation.Provider)
	if err != nil {
		return nil, apperror.Internal(err).WithData(failureData)
	}
	if apiKey == nil {
		return nil, apperror.ProviderNotConfigured(string(conversation.Provider)).WithData(failureData)
	}

	// 4. History, including the turn just stored
	stored, err := uow.MessageRepository().FindAllByConversationId(ctx, conversation.Id)
	if err != nil {
		return nil, apperror.Internal(err).WithData(failureData)
	}
	history := toHistory(stored)

	// 5. Provider round-trip, outside any transaction
	start := time.Now()
	reply, err := s.gateway.SendMessage(ctx, conversation.Provider, apiKey.KeyValue, history, conversation.Model)
	latency := time.Since(start)
	if err != nil {
		return nil, s.providerError(conversation, err).WithData(failureData)
	}

	// 6. Assistant turn and conversation bump, together
	assistantMessage := &entity.Message{
		ConversationId: conversation.Id,
		Role:           entity.MessageRoleAssistant,
		Content:        reply.Content,
		Metadata:       entity.MessageMetadata{Usage: reply.Usage},
	}
	if err := s.storeReply(ctx, assistantMessage); err != nil {
		if appErr, ok := apperror.As(err); ok {
			return nil, appErr.WithData(failureData)
		}
		return nil, apperror.Internal(err).WithData(failureData)
	}

	// 7. Usage event, best effort
	s.publishExchange(ctx, userId, conversation, reply, assistantMessage.Id, latency)

	return &dto.SendMessageResponse{
		UserMessage:      failureData.UserMessage,
		AssistantMessage: toMessageResponse(assistantMessage),
	}, nil
}

func (s *messageService) storeReply(ctx context.Context, assistantMessage *entity.Message) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Touch first: it fails for a conversation deleted while the provider was
	// answering, and on SQL backends it locks the row until commit.
	touched, err := uow.ConversationRepository().Touch(ctx, assistantMessage.ConversationId)
	if err != nil {
		return err
	}
	if !touched {
		return apperror.NotFound("Conversation not found")
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		if errors.Is(err, contract.ErrConversationNotFound) {
			return apperror.NotFound("Conversation not found")
		}
		return err
	}

	return uow.Commit()
}

func (s *messageService) providerError(conversation *entity.Conversation, err error) *apperror.Error {
	var unsupported *llm.ErrUnsupportedProvider
	if errors.As(err, &unsupported) {
		return apperror.UnsupportedProvider(unsupported.Value)
	}

	sendErr := llm.NewSendError(conversation.Provider, err)
	s.logger.Error("ORCHESTRATOR", "Provider call failed", map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"provider":        string(sendErr.Provider),
		"model":           conversation.Model,
		"timeout":         sendErr.Timeout,
		"error":           sendErr.Message,
	})

	if sendErr.Timeout {
		return apperror.Wrap(apperror.KindProviderTimeout, sendErr.Error(), sendErr)
	}
	return apperror.Wrap(apperror.KindUpstream, sendErr.Error(), sendErr)
}

func (s *messageService) publishExchange(
	ctx context.Context,
	userId uuid.UUID,
	conversation *entity.Conversation,
	reply *llm.Reply,
	assistantMessageId uuid.UUID,
	latency time.Duration,
) {
	if s.publisherService == nil {
		return
	}

	event := dto.ExchangeCompletedEvent{
		UserId:             userId,
		ConversationId:     conversation.Id,
		AssistantMessageId: assistantMessageId,
		Provider:           string(conversation.Provider),
		Model:              reply.Model,
		Usage:              toUsageDTO(reply.Usage),
		LatencyMs:          latency.Milliseconds(),
		OccurredAt:         time.Now(),
	}
	payload, err := json.Marshal(event)
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn("ORCHESTRATOR", "Failed to publish exchange event", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
}

func (s *messageService) Update(ctx context.Context, userId, conversationId, messageId uuid.UUID, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findConversationMessage(ctx, uow, userId, conversationId, messageId); err != nil {
		return nil, err
	}

	updated, err := uow.MessageRepository().UpdateContent(ctx, messageId, req.Content)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("Message not found")
	}
	return toMessageResponse(updated), nil
}

func (s *messageService) Delete(ctx context.Context, userId, conversationId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findConversationMessage(ctx, uow, userId, conversationId, messageId); err != nil {
		return err
	}

	existed, err := uow.MessageRepository().Delete(ctx, messageId)
	if err != nil {
		return err
	}
	if !existed {
		return apperror.NotFound("Message not found")
	}
	return nil
}

func findConversationMessage(ctx context.Context, uow unitofwork.UnitOfWork, userId, conversationId, messageId uuid.UUID) (*entity.Message, error) {
	if _, err := findOwnedConversation(ctx, uow, userId, conversationId); err != nil {
		return nil, err
	}

	message, err := uow.MessageRepository().FindById(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if message == nil || message.ConversationId != conversationId {
		return nil, apperror.NotFound("Message not found")
	}
	return message, nil
}

// normalizeImages validates every image and stores it as a data URL.
func normalizeImages(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		img, err := llm.ParseImage(r)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindValidation, "images must be base64 data URLs", err)
		}
		out = append(out, img.DataURL())
	}
	return out, nil
}

func toAttachments(in []dto.AttachmentDTO) []entity.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Attachment{
			Name:     a.Name,
			MimeType: a.MimeType,
			Content:  a.Content,
		})
	}
	return out
}

// toHistory converts stored turns to provider messages. Attachment text is appended
// to the turn it came with.
func toHistory(messages []*entity.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		msg := llm.Message{
			Role:    string(m.Role),
			Content: composeContent(m),
		}
		for _, raw := range m.Metadata.Images {
			img, err := llm.ParseImage(raw)
			if err != nil {
				continue
			}
			msg.Images = append(msg.Images, img)
		}
		history = append(history, msg)
	}
	return history
}

func composeContent(m *entity.Message) string {
	if len(m.Metadata.Attachments) == 0 {
		return m.Content
	}

	var b strings.Builder
	b.WriteString(m.Content)
	for _, a := range m.Metadata.Attachments {
		if a.Content == "" {
			continue
		}
		fmt.Fprintf(&b, constant.AttachmentHeader, a.Name)
		b.WriteString(a.Content)
	}
	return b.String()
}
