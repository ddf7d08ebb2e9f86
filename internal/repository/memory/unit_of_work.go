package memory

import (
	"context"

	"llm-chat-be/internal/repository/contract"
	"llm-chat-be/internal/repository/unitofwork"
)

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork shares one Store across repositories. Every repository call is
// atomic on its own; Begin/Commit/Rollback only track state and do not undo writes.
type UnitOfWork struct {
	store *Store
	open  bool
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.open {
		return errTxStarted
	}
	u.open = true
	return nil
}

func (u *UnitOfWork) Commit() error {
	if !u.open {
		return errNoTx
	}
	u.open = false
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if !u.open {
		return errNoTx
	}
	u.open = false
	return nil
}

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *UnitOfWork) ConversationRepository() contract.ConversationRepository {
	return NewConversationRepository(u.store)
}

func (u *UnitOfWork) MessageRepository() contract.MessageRepository {
	return NewMessageRepository(u.store)
}

func (u *UnitOfWork) ApiKeyRepository() contract.ApiKeyRepository {
	return NewApiKeyRepository(u.store)
}
