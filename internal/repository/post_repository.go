package repository

import (
	"context"

	"gorm.io/gorm"

	"noticeboard/internal/model"
	"noticeboard/internal/policy"
)

// PostFilter narrows board list queries.
type PostFilter struct {
	// Category restricts the list to one category. Empty or the "all"
	// sentinel keeps every listed category.
	Category string
}

// Scope applies the filter. Detail-only categories never appear in a list,
// whatever category was asked for.
func (f PostFilter) Scope(db *gorm.DB) *gorm.DB {
	db = db.Where("category NOT IN ?", policy.DetailOnlyCategories()).
		Where("category IN ?", policy.ListedCategories())
	if !policy.IsAll(f.Category) {
		db = db.Where("category = ?", f.Category)
	}
	return db
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.Post, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]model.Post, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PostRepository) error) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("User", "Answers").Create(post).Error
}

// Update saves every column of an existing post.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("User", "Answers").Save(post).Error
}

// Delete removes a post together with its answers.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindByID finds a post with its author and answers, oldest answer first.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_date ASC, id ASC")
		}).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Count counts posts matching filter.
func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(filter.Scope).
		Count(&total).Error
	return total, err
}

// List returns one page of posts matching filter, newest first, with authors.
func (r *postRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Scopes(filter.Scope).
		Preload("User").
		Order("created_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByCategory returns the newest posts of a single category.
func (r *postRepository) ListByCategory(ctx context.Context, category string, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_date DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// WithTransaction executes a function within a database transaction.
func (r *postRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PostRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &postRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
