package service

import (
	"context"
	"strings"

	"llm-chat-be/internal/constant"
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/internal/repository/unitofwork"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type IConversationService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ConversationResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	GetMessages(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.MessageResponse, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{uowFactory: uowFactory}
}

func (s *conversationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, toConversationResponse(c))
	}
	return result, nil
}

func (s *conversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		return nil, apperror.UnsupportedProvider(req.Provider)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = constant.DefaultConversationTitle
	}

	owner := userId
	conversation := entity.Conversation{
		UserId:   &owner,
		Title:    title,
		Provider: provider,
		Model:    llm.ResolveModel(provider, req.Model),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	return toConversationResponse(&conversation), nil
}

func (s *conversationService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := findOwnedConversation(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	var patch entity.ConversationPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("title must not be empty")
		}
		patch.Title = &title
	}

	targetProvider := conversation.Provider
	if req.Provider != nil {
		provider, err := llm.ParseProvider(*req.Provider)
		if err != nil {
			return nil, apperror.UnsupportedProvider(*req.Provider)
		}
		patch.Provider = &provider
		targetProvider = provider
	}

	switch {
	case req.Model != nil:
		model := llm.ResolveModel(targetProvider, *req.Model)
		patch.Model = &model
	case targetProvider != conversation.Provider:
		// The old model belongs to the old provider.
		model := llm.DefaultModel(targetProvider)
		patch.Model = &model
	}

	updated, err := uow.ConversationRepository().Update(ctx, conversation.Id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("Conversation not found")
	}

	return toConversationResponse(updated), nil
}

func (s *conversationService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedConversation(ctx, uow, userId, id); err != nil {
		return err
	}

	existed, err := uow.ConversationRepository().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperror.NotFound("Conversation not found")
	}
	return nil
}

func (s *conversationService) GetMessages(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := findOwnedConversation(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAllByConversationId(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, toMessageResponse(m))
	}
	return result, nil
}

// findOwnedConversation reports conversations owned by someone else as not found.
func findOwnedConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if conversation == nil || !conversation.OwnedBy(userId) {
		return nil, apperror.NotFound("Conversation not found")
	}
	return conversation, nil
}
