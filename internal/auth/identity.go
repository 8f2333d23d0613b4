package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"noticeboard/internal/model"
	"noticeboard/internal/repository"
)

// IdentityResolver maps a token subject to the user it belongs to.
type IdentityResolver interface {
	// Resolve returns nil without error when subject is empty or unknown.
	Resolve(ctx context.Context, subject string) (*model.User, error)
}

type identityResolver struct {
	users repository.UserRepository
}

// NewIdentityResolver creates a resolver backed by the user table.
func NewIdentityResolver(users repository.UserRepository) IdentityResolver {
	return &identityResolver{users: users}
}

func (r *identityResolver) Resolve(ctx context.Context, subject string) (*model.User, error) {
	if subject == "" {
		return nil, nil
	}
	user, err := r.users.FindBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}
