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

type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, found := r.store.conversations.Get(message.ConversationId.String()); !found {
		return contract.ErrConversationNotFound
	}
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	message.CreatedAt = time.Now()

	rec := messageRecord{seq: r.store.next(), value: *copyMessage(*message)}
	r.store.messages.Set(message.Id.String(), rec, cache.NoExpiration)
	return nil
}

func (r *MessageRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if x, found := r.store.messages.Get(id.String()); found {
		return copyMessage(x.(messageRecord).value), nil
	}
	return nil, nil
}

func (r *MessageRepository) FindAllByConversationId(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []messageRecord
	for _, item := range r.store.messages.Items() {
		rec := item.Object.(messageRecord)
		if rec.value.ConversationId == conversationId {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.value.CreatedAt.Equal(b.value.CreatedAt) {
			return a.value.CreatedAt.Before(b.value.CreatedAt)
		}
		return a.seq < b.seq
	})

	out := make([]*entity.Message, len(records))
	for i, rec := range records {
		out[i] = copyMessage(rec.value)
	}
	return out, nil
}

func (r *MessageRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	x, found := r.store.messages.Get(id.String())
	if !found {
		return nil, nil
	}
	rec := x.(messageRecord)
	rec.value.Content = content
	r.store.messages.Set(id.String(), rec, cache.NoExpiration)
	return copyMessage(rec.value), nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, found := r.store.messages.Get(id.String()); !found {
		return false, nil
	}
	r.store.messages.Delete(id.String())
	return true, nil
}

func (r *MessageRepository) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	deleteMessagesLocked(r.store, conversationId)
	return nil
}

func deleteMessagesLocked(s *Store, conversationId uuid.UUID) {
	for key, item := range s.messages.Items() {
		if item.Object.(messageRecord).value.ConversationId == conversationId {
			s.messages.Delete(key)
		}
	}
}
