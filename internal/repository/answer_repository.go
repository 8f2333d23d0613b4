package repository

import (
	"context"

	"gorm.io/gorm"

	"noticeboard/internal/model"
)

// AnswerRepository defines answer persistence operations.
type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new answer repository.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Create creates a new answer entry. The store rejects answers whose post
// does not exist.
func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}
