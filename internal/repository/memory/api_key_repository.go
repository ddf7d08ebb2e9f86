package memory

import (
	"context"
	"sort"
	"time"

	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/repository/contract"
	"llm-chat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ApiKeyRepository struct {
	store *Store
}

func NewApiKeyRepository(store *Store) contract.ApiKeyRepository {
	return &ApiKeyRepository{store: store}
}

func (r *ApiKeyRepository) FindActive(ctx context.Context, userId uuid.UUID, provider llm.Provider) (*entity.ApiKey, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.filterLocked(func(k entity.ApiKey) bool {
		return k.UserId == userId && k.Provider == provider && k.IsActive
	}) {
		return copyApiKey(rec.value), nil
	}
	return nil, nil
}

func (r *ApiKeyRepository) FindAllActiveByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.ApiKey, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return toApiKeys(r.filterLocked(func(k entity.ApiKey) bool {
		return k.UserId == userId && k.IsActive
	})), nil
}

func (r *ApiKeyRepository) FindHistory(ctx context.Context, userId uuid.UUID, provider llm.Provider) ([]*entity.ApiKey, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return toApiKeys(r.filterLocked(func(k entity.ApiKey) bool {
		return k.UserId == userId && k.Provider == provider
	})), nil
}

func (r *ApiKeyRepository) ReplaceActive(ctx context.Context, key *entity.ApiKey) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rec := range r.filterLocked(func(k entity.ApiKey) bool {
		return k.UserId == key.UserId && k.Provider == key.Provider && k.IsActive
	}) {
		rec.value.IsActive = false
		r.store.apiKeys.Set(rec.value.Id.String(), rec, cache.NoExpiration)
	}

	if key.Id == uuid.Nil {
		key.Id = uuid.New()
	}
	key.IsActive = true
	key.CreatedAt = time.Now()

	rec := apiKeyRecord{seq: r.store.next(), value: *copyApiKey(*key)}
	r.store.apiKeys.Set(key.Id.String(), rec, cache.NoExpiration)
	return nil
}

func (r *ApiKeyRepository) DeleteActive(ctx context.Context, userId uuid.UUID, provider llm.Provider) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	deleted := false
	for _, rec := range r.filterLocked(func(k entity.ApiKey) bool {
		return k.UserId == userId && k.Provider == provider && k.IsActive
	}) {
		r.store.apiKeys.Delete(rec.value.Id.String())
		deleted = true
	}
	return deleted, nil
}

// filterLocked returns matching records oldest first.
func (r *ApiKeyRepository) filterLocked(match func(entity.ApiKey) bool) []apiKeyRecord {
	var records []apiKeyRecord
	for _, item := range r.store.apiKeys.Items() {
		rec := item.Object.(apiKeyRecord)
		if match(rec.value) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].seq < records[j].seq
	})
	return records
}

func toApiKeys(records []apiKeyRecord) []*entity.ApiKey {
	out := make([]*entity.ApiKey, len(records))
	for i, rec := range records {
		out[i] = copyApiKey(rec.value)
	}
	return out
}
