package service

import (
	"context"

	"llm-chat-be/internal/entity"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	// EnsureMockUser creates the single demo user on first boot and keeps its
	// password hash in sync with configuration.
	EnsureMockUser(ctx context.Context, id uuid.UUID, username, password string) (*entity.User, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *userService) EnsureMockUser(ctx context.Context, id uuid.UUID, username, password string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	if user != nil {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			return user, nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if _, err := uow.UserRepository().UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		s.logger.Info("USER", "Mock user password rotated", map[string]interface{}{"user_id": id.String()})
		return user, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user = &entity.User{
		Id:           id,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("USER", "Mock user created", map[string]interface{}{
		"user_id":  id.String(),
		"username": username,
	})
	return user, nil
}
