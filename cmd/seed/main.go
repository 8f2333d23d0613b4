package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"noticeboard/internal/auth"
	"noticeboard/internal/config"
	"noticeboard/internal/db"
	"noticeboard/internal/model"
	"noticeboard/internal/policy"
	"noticeboard/internal/repository"
)

const devTokenTTL = 24 * time.Hour

// seedNamespace keeps seeded identities stable across runs.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("noticeboard/seed"))

type seedUser struct {
	key      string
	nickname string
	role     model.Role
}

type seedPost struct {
	title    string
	content  string
	category string
	author   string
	answer   string
}

var users = []seedUser{
	{key: "admin", nickname: "관리자", role: model.RoleAdmin},
	{key: "member", nickname: "홍길동", role: model.RoleMember},
	{key: "guest", nickname: "김철수", role: model.RoleMember},
}

var posts = []seedPost{
	{title: "서비스 점검 안내", content: "이번 주 토요일 새벽 2시부터 4시까지 점검이 있습니다.", category: policy.CategoryNotice, author: "admin"},
	{title: "가을맞이 이벤트", content: "댓글을 남겨 주신 분들께 추첨으로 선물을 드립니다.", category: policy.CategoryEvent, author: "admin"},
	{title: "배송 문의드립니다", content: "주문한 상품이 아직 도착하지 않았어요.", category: policy.CategoryInquiry, author: "member", answer: "확인 후 안내드리겠습니다."},
	{title: "야간 모드 추가해 주세요", content: "밤에 보기 눈이 아픕니다.", category: policy.CategorySuggestion, author: "member"},
	{title: "사진 업로드가 안 돼요", content: "업로드 버튼을 눌러도 반응이 없습니다.", category: policy.CategoryOther, author: "guest"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	answerRepo := repository.NewAnswerRepository(gormDB)

	seeded, err := seedUsers(ctx, userRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	created, err := seedPosts(ctx, postRepo, answerRepo, seeded, posts)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	log.Printf("Seed completed successfully!")
	log.Printf("  - Posts created: %d", created)
	for _, u := range users {
		user := seeded[u.key]
		token, err := jwtService.GenerateAccessToken(user.UserID, user.Nickname, devTokenTTL)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", u.key, err)
		}
		log.Printf("  - %s (%s) token: %s", u.key, user.Role, token)
	}
}

// seedUsers finds or creates each user and returns them keyed by seed key.
func seedUsers(ctx context.Context, repo repository.UserRepository, items []seedUser) (map[string]*model.User, error) {
	out := make(map[string]*model.User, len(items))
	for _, item := range items {
		subject := uuid.NewSHA1(seedNamespace, []byte(item.key)).String()

		existing, err := repo.FindBySubject(ctx, subject)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("error checking user %s: %w", item.key, err)
		}
		if existing != nil {
			out[item.key] = existing
			continue
		}

		user := &model.User{UserID: subject, Nickname: item.nickname, Role: item.role}
		if err := repo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("error creating user %s: %w", item.key, err)
		}
		out[item.key] = user
	}
	return out, nil
}

// seedPosts writes the sample posts once; a board that already has a notice
// is left untouched.
func seedPosts(
	ctx context.Context,
	posts repository.PostRepository,
	answers repository.AnswerRepository,
	authors map[string]*model.User,
	items []seedPost,
) (int, error) {
	existing, err := posts.ListByCategory(ctx, policy.CategoryNotice, 1)
	if err != nil {
		return 0, fmt.Errorf("error checking notices: %w", err)
	}
	if len(existing) > 0 {
		log.Println("Board already seeded, skipping posts")
		return 0, nil
	}

	created := 0
	for _, item := range items {
		author := authors[item.author]
		post := &model.Post{
			Title:    item.title,
			Content:  item.content,
			Category: item.category,
			AuthorID: author.ID,
		}
		if err := posts.Create(ctx, post); err != nil {
			return created, fmt.Errorf("error creating post %q: %w", item.title, err)
		}
		created++

		if item.answer == "" {
			continue
		}
		answer := &model.Answer{
			QuestionID: post.ID,
			AuthorID:   authors["admin"].ID,
			Content:    item.answer,
		}
		if err := answers.Create(ctx, answer); err != nil {
			return created, fmt.Errorf("error answering post %q: %w", item.title, err)
		}
	}
	return created, nil
}
