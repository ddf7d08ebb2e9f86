package memory

import (
	"context"
	"sort"
	"time"

	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	store *Store
}

func NewConversationRepository(store *Store) contract.ConversationRepository {
	return &ConversationRepository{store: store}
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
	}
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	rec := conversationRecord{seq: r.store.next(), value: *copyConversation(*conversation)}
	r.store.conversations.Set(conversation.Id.String(), rec, cache.NoExpiration)
	return nil
}

func (r *ConversationRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if x, found := r.store.conversations.Get(id.String()); found {
		return copyConversation(x.(conversationRecord).value), nil
	}
	return nil, nil
}

func (r *ConversationRepository) FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []conversationRecord
	for _, item := range r.store.conversations.Items() {
		rec := item.Object.(conversationRecord)
		if rec.value.OwnedBy(userId) {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.value.UpdatedAt.Equal(b.value.UpdatedAt) {
			return a.value.UpdatedAt.After(b.value.UpdatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*entity.Conversation, len(records))
	for i, rec := range records {
		out[i] = copyConversation(rec.value)
	}
	return out, nil
}

func (r *ConversationRepository) Update(ctx context.Context, id uuid.UUID, patch entity.ConversationPatch) (*entity.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	x, found := r.store.conversations.Get(id.String())
	if !found {
		return nil, nil
	}
	rec := x.(conversationRecord)
	if patch.Title != nil {
		rec.value.Title = *patch.Title
	}
	if patch.Provider != nil {
		rec.value.Provider = *patch.Provider
	}
	if patch.Model != nil {
		rec.value.Model = *patch.Model
	}
	rec.value.UpdatedAt = time.Now()

	r.store.conversations.Set(id.String(), rec, cache.NoExpiration)
	return copyConversation(rec.value), nil
}

func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	x, found := r.store.conversations.Get(id.String())
	if !found {
		return false, nil
	}
	rec := x.(conversationRecord)
	rec.value.UpdatedAt = time.Now()
	r.store.conversations.Set(id.String(), rec, cache.NoExpiration)
	return true, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	deleteMessagesLocked(r.store, id)

	if _, found := r.store.conversations.Get(id.String()); !found {
		return false, nil
	}
	r.store.conversations.Delete(id.String())
	return true, nil
}
