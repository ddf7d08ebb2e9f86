package mapper

import (
	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/model"
	"llm-chat-be/pkg/llm"
)

type ApiKeyMapper struct{}

func NewApiKeyMapper() *ApiKeyMapper {
	return &ApiKeyMapper{}
}

func (m *ApiKeyMapper) ToEntity(k *model.ApiKey) *entity.ApiKey {
	if k == nil {
		return nil
	}
	return &entity.ApiKey{
		Id:        k.Id,
		UserId:    k.UserId,
		Provider:  llm.Provider(k.Provider),
		KeyValue:  k.KeyValue,
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
	}
}

func (m *ApiKeyMapper) ToModel(k *entity.ApiKey) *model.ApiKey {
	if k == nil {
		return nil
	}
	return &model.ApiKey{
		Id:        k.Id,
		UserId:    k.UserId,
		Provider:  string(k.Provider),
		KeyValue:  k.KeyValue,
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
	}
}

func (m *ApiKeyMapper) ToEntities(keys []*model.ApiKey) []*entity.ApiKey {
	out := make([]*entity.ApiKey, len(keys))
	for i, k := range keys {
		out[i] = m.ToEntity(k)
	}
	return out
}
