package repository

import (
	"context"

	"gorm.io/gorm"

	"noticeboard/internal/model"
)

// UserRepository defines read access to member accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindBySubject(ctx context.Context, subject string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create is used by the seed tool; the API never writes users.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindBySubject finds the user whose external identity matches a token subject.
func (r *userRepository) FindBySubject(ctx context.Context, subject string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", subject).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
