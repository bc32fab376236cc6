package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/domain"
	r "stockroom/internal/redis"
	"stockroom/internal/repository"
)

type UserService struct {
	userRepo  *repository.UserRepository
	userCache r.Cache[domain.User]
}

func NewUserService(userRepo *repository.UserRepository, rdb *goredis.Client) *UserService {
	return &UserService{
		userRepo:  userRepo,
		userCache: r.NewJSONCache[domain.User](rdb, "user", 5*time.Minute),
	}
}

func (s *UserService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userCache.Get(ctx, userID.String())
	if err == nil && user != nil {
		return user, nil
	}

	user, err = s.userRepo.FindByID(userID)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}

	_ = s.userCache.Set(ctx, userID.String(), user)
	return user, nil
}

func (s *UserService) SetRole(ctx context.Context, userID uuid.UUID, role domain.Role) (*domain.User, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, repository.ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return nil, err
	}

	_ = s.userCache.Delete(ctx, userID.String())
	return s.userRepo.FindByID(userID)
}
