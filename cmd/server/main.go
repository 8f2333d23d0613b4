package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"noticeboard/docs"
	"noticeboard/internal/auth"
	"noticeboard/internal/config"
	"noticeboard/internal/db"
	"noticeboard/internal/handler"
	"noticeboard/internal/repository"
	"noticeboard/internal/router"
	"noticeboard/internal/service"
)

// @title Noticeboard API
// @version 1.0
// @description Community noticeboard with categories, admin answers and optional JWT sessions.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// The legacy tables are owned by the web app; only migrate on request.
	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			log.Fatalf("auto-migrate: %v", err)
		}
		log.Println("auto-migrate completed")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	answerRepo := repository.NewAnswerRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	resolver := auth.NewIdentityResolver(userRepo)

	// Initialize services
	boardService := service.NewBoardService(postRepo, answerRepo)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardService)
	userHandler := handler.NewUserHandler()

	for _, r := range router.Register(e, cfg, jwtService, resolver, boardHandler, userHandler) {
		log.Printf("route %-6s /api%s (%s)", r.Method, r.Path, r.Access)
	}

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
		if strings.HasPrefix(cfg.SwaggerHost, "http://") || strings.HasPrefix(cfg.SwaggerHost, "https://") {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
