package service

import (
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/pkg/llm"
)

type IProviderService interface {
	GetAll() []*dto.ProviderResponse
	GetModels(provider string) (*dto.ModelsResponse, error)
}

type providerService struct {
	gateway llm.Gateway
}

func NewProviderService(gateway llm.Gateway) IProviderService {
	return &providerService{gateway: gateway}
}

func (s *providerService) GetAll() []*dto.ProviderResponse {
	specs := llm.Providers()
	result := make([]*dto.ProviderResponse, 0, len(specs))
	for _, spec := range specs {
		result = append(result, &dto.ProviderResponse{
			Provider:       string(spec.Provider),
			DefaultModel:   spec.DefaultModel,
			SupportsImages: spec.SupportsImages,
		})
	}
	return result
}

func (s *providerService) GetModels(provider string) (*dto.ModelsResponse, error) {
	p, err := llm.ParseProvider(provider)
	if err != nil {
		return nil, apperror.UnsupportedProvider(provider)
	}

	models, err := s.gateway.ListModels(p)
	if err != nil {
		return nil, apperror.UnsupportedProvider(provider)
	}
	return &dto.ModelsResponse{Models: models}, nil
}
