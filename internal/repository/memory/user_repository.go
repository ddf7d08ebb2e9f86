package memory

import (
	"context"
	"fmt"
	"time"

	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range r.store.users.Items() {
		if item.Object.(entity.User).Username == user.Username {
			return fmt.Errorf("username %q already exists", user.Username)
		}
	}

	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.store.users.Set(user.Id.String(), *user, cache.NoExpiration)
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if x, found := r.store.users.Get(id.String()); found {
		u := x.(entity.User)
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.users.Items() {
		u := item.Object.(entity.User)
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	x, found := r.store.users.Get(id.String())
	if !found {
		return false, nil
	}
	u := x.(entity.User)
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	r.store.users.Set(id.String(), u, cache.NoExpiration)
	return true, nil
}
