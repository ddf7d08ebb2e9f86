package service

import (
	"context"
	"strings"

	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/internal/repository/unitofwork"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type IApiKeyService interface {
	// GetAll lists the active key of every configured provider, masked.
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ApiKeyResponse, error)
	Set(ctx context.Context, userId uuid.UUID, req *dto.SetApiKeyRequest) (*dto.ApiKeyResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, provider string) error
}

type apiKeyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewApiKeyService(uowFactory unitofwork.RepositoryFactory) IApiKeyService {
	return &apiKeyService{uowFactory: uowFactory}
}

func (s *apiKeyService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ApiKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	keys, err := uow.ApiKeyRepository().FindAllActiveByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ApiKeyResponse, 0, len(keys))
	for _, k := range keys {
		result = append(result, toApiKeyResponse(k))
	}
	return result, nil
}

func (s *apiKeyService) Set(ctx context.Context, userId uuid.UUID, req *dto.SetApiKeyRequest) (*dto.ApiKeyResponse, error) {
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		return nil, apperror.UnsupportedProvider(req.Provider)
	}
	keyValue := strings.TrimSpace(req.KeyValue)
	if keyValue == "" {
		return nil, apperror.Validation("keyValue is required")
	}

	key := entity.ApiKey{
		UserId:   userId,
		Provider: provider,
		KeyValue: keyValue,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ApiKeyRepository().ReplaceActive(ctx, &key); err != nil {
		return nil, err
	}

	return toApiKeyResponse(&key), nil
}

func (s *apiKeyService) Delete(ctx context.Context, userId uuid.UUID, provider string) error {
	p, err := llm.ParseProvider(provider)
	if err != nil {
		return apperror.UnsupportedProvider(provider)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existed, err := uow.ApiKeyRepository().DeleteActive(ctx, userId, p)
	if err != nil {
		return err
	}
	if !existed {
		return apperror.NotFound("No API key configured for " + string(p))
	}
	return nil
}
