package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "noticeboard/internal/errors"
	"noticeboard/internal/model"
	"noticeboard/internal/policy"
	"noticeboard/internal/repository"
)

// NoticeLimit is how many notices the notices feed returns.
const NoticeLimit = 3

// ListQuery is a board list request after query-string parsing.
type ListQuery struct {
	Page     int
	PerPage  int
	Category string
}

// ListResult is one page of the board list.
type ListResult struct {
	Posts      []model.Post
	Pagination Pagination
}

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title   string
	Content string
	// Category is nil when the client did not choose one.
	Category *string
}

// UpdatePostInput carries a partial update; nil fields keep their value.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

// BoardService handles noticeboard operations.
type BoardService interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	Notices(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, viewer *model.User, id uint) (*model.Post, error)
	Create(ctx context.Context, viewer *model.User, in CreatePostInput) (*model.Post, error)
	Update(ctx context.Context, viewer *model.User, id uint, in UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, viewer *model.User, id uint) error
	AddAnswer(ctx context.Context, viewer *model.User, postID uint, content string) (*model.Answer, error)
}

type boardService struct {
	posts   repository.PostRepository
	answers repository.AnswerRepository
	now     func() time.Time
}

// NewBoardService creates a new board service.
func NewBoardService(posts repository.PostRepository, answers repository.AnswerRepository) BoardService {
	return &boardService{
		posts:   posts,
		answers: answers,
		now:     time.Now,
	}
}

// List returns a page of listed posts, newest first.
func (s *boardService) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	page, limit := NormalizePage(q.Page, q.PerPage)
	filter := repository.PostFilter{Category: q.Category}

	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	pagination := NewPagination(page, limit, total)
	posts, err := s.posts.List(ctx, filter, pagination.Offset(), pagination.Limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &ListResult{Posts: posts, Pagination: pagination}, nil
}

// Notices returns the newest notices. Anyone may read them.
func (s *boardService) Notices(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.ListByCategory(ctx, policy.CategoryNotice, NoticeLimit)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return posts, nil
}

// Get loads a post and checks that viewer may open it.
func (s *boardService) Get(ctx context.Context, viewer *model.User, id uint) (*model.Post, error) {
	post, err := s.findPost(ctx, s.posts, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckDetailAccess(viewer, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Create stores a new post owned by viewer.
func (s *boardService) Create(ctx context.Context, viewer *model.User, in CreatePostInput) (*model.Post, error) {
	if viewer == nil {
		return nil, apperrors.ErrUnauthorized
	}

	category := policy.DefaultCategory()
	if in.Category != nil {
		var err error
		if category, err = policy.CategoryForCreate(*in.Category); err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		Title:     in.Title,
		Content:   in.Content,
		Category:  category,
		AuthorID:  viewer.ID,
		CreatedAt: s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update applies a partial update. The modified timestamp is refreshed on
// every call, even when no field changes.
func (s *boardService) Update(ctx context.Context, viewer *model.User, id uint, in UpdatePostInput) (*model.Post, error) {
	if viewer == nil {
		return nil, apperrors.ErrUnauthorized
	}

	var updated *model.Post
	err := s.posts.WithTransaction(ctx, func(ctx context.Context, repo repository.PostRepository) error {
		post, err := s.findPost(ctx, repo, id)
		if err != nil {
			return err
		}
		if !policy.CanModify(viewer, post) {
			return apperrors.ErrUpdateForbidden
		}

		if in.Title != nil {
			post.Title = *in.Title
		}
		if in.Content != nil {
			post.Content = *in.Content
		}
		modified := s.now()
		post.ModifiedAt = &modified

		if err := repo.Update(ctx, post); err != nil {
			return fmt.Errorf("update post %d: %w", id, err)
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a post and its answers.
func (s *boardService) Delete(ctx context.Context, viewer *model.User, id uint) error {
	if viewer == nil {
		return apperrors.ErrUnauthorized
	}

	return s.posts.WithTransaction(ctx, func(ctx context.Context, repo repository.PostRepository) error {
		post, err := s.findPost(ctx, repo, id)
		if err != nil {
			return err
		}
		if !policy.CanModify(viewer, post) {
			return apperrors.ErrDeleteForbidden
		}
		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPostNotFound
			}
			return fmt.Errorf("delete post %d: %w", id, err)
		}
		return nil
	})
}

// AddAnswer attaches an admin answer to a post. Anonymous callers and
// members are both refused with ErrAnswerForbidden. The post is not looked up
// first; a foreign-key rejection from the store is reported as not found.
func (s *boardService) AddAnswer(ctx context.Context, viewer *model.User, postID uint, content string) (*model.Answer, error) {
	if !policy.IsAdmin(viewer) {
		return nil, apperrors.ErrAnswerForbidden
	}

	answer := &model.Answer{
		QuestionID: postID,
		AuthorID:   viewer.ID,
		Content:    content,
		CreatedAt:  s.now(),
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return answer, nil
}

func (s *boardService) findPost(ctx context.Context, repo repository.PostRepository, id uint) (*model.Post, error) {
	post, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return post, nil
}
