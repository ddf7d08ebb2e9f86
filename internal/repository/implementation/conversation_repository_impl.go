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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
	}
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	m := r.mapper.ConversationToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ConversationToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *ConversationRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ConversationToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Conversation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ConversationToEntity(m)
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch entity.ConversationPatch) (*entity.Conversation, error) {
	conversation, err := r.FindById(ctx, id)
	if err != nil || conversation == nil {
		return nil, err
	}

	if patch.Title != nil {
		conversation.Title = *patch.Title
	}
	if patch.Provider != nil {
		conversation.Provider = *patch.Provider
	}
	if patch.Model != nil {
		conversation.Model = *patch.Model
	}
	conversation.UpdatedAt = time.Now()

	m := r.mapper.ConversationToModel(conversation)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return r.mapper.ConversationToEntity(m), nil
}

func (r *ConversationRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	existed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Parent row first: it waits on any reply insert holding the row lock,
		// so that reply's message is visible to the cleanup below.
		res := tx.Where("id = ?", id).Delete(&model.Conversation{})
		if res.Error != nil {
			return res.Error
		}
		existed = res.RowsAffected > 0
		return tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}
