package user

import (
	"Recipe-Finder/entities"
	"Recipe-Finder/pkg/store"
	"context"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, userID string, user *entities.User) error
		GetUser(ctx context.Context, userID string) (*entities.User, bool, error)
	}

	userRepository struct {
		store store.Store
	}
)

func NewUserRepository(st store.Store) UserRepository {
	return &userRepository{store: st}
}

func (r *userRepository) CreateUser(ctx context.Context, userID string, user *entities.User) error {
	return r.store.Set(ctx, user, entities.CollectionUsers, userID)
}

func (r *userRepository) GetUser(ctx context.Context, userID string) (*entities.User, bool, error) {
	var user entities.User
	found, err := r.store.Get(ctx, &user, entities.CollectionUsers, userID)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}
