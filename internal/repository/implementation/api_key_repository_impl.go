package implementation

import (
	"context"
	"errors"
	"time"

	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/mapper"
	"llm-chat-be/internal/model"
	"llm-chat-be/internal/repository/contract"
	"llm-chat-be/internal/repository/specification"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKeyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApiKeyMapper
}

func NewApiKeyRepository(db *gorm.DB) contract.ApiKeyRepository {
	return &ApiKeyRepositoryImpl{
		db:     db,
		mapper: mapper.NewApiKeyMapper(),
	}
}

func (r *ApiKeyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ApiKeyRepositoryImpl) FindActive(ctx context.Context, userId uuid.UUID, provider llm.Provider) (*entity.ApiKey, error) {
	var m model.ApiKey
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: provider},
		specification.ActiveKeys{},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ApiKeyRepositoryImpl) FindAllActiveByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.ApiKey, error) {
	var models []*model.ApiKey
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveKeys{},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ApiKeyRepositoryImpl) FindHistory(ctx context.Context, userId uuid.UUID, provider llm.Provider) ([]*entity.ApiKey, error) {
	var models []*model.ApiKey
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: provider},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ApiKeyRepositoryImpl) ReplaceActive(ctx context.Context, key *entity.ApiKey) error {
	if key.Id == uuid.Nil {
		key.Id = uuid.New()
	}
	key.IsActive = true
	key.CreatedAt = time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deactivate := r.applySpecifications(tx.Model(&model.ApiKey{}),
			specification.UserOwnedBy{UserID: key.UserId},
			specification.ByProvider{Provider: key.Provider},
			specification.ActiveKeys{},
		)
		if err := deactivate.Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(r.mapper.ToModel(key)).Error
	})
}

func (r *ApiKeyRepositoryImpl) DeleteActive(ctx context.Context, userId uuid.UUID, provider llm.Provider) (bool, error) {
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: provider},
		specification.ActiveKeys{},
	)
	res := query.Delete(&model.ApiKey{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
