package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/stackit/qna-api/internal/api/handler"
	"github.com/stackit/qna-api/internal/api/middleware"
	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are injected fully
// constructed so the HTTP layer owns no wiring of its own.
type Deps struct {
	Auth          ports.AuthService
	Questions     ports.QuestionService
	Tags          ports.TagService
	Answers       ports.AnswerService
	Votes         ports.VoteService
	Notifications ports.NotificationService
	Users         ports.UserService
	AI            ports.AIService
	Images        ports.ImageStore

	DB    *gorm.DB
	Redis *redis.Client

	TokenTTL      time.Duration
	SecureCookies bool
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("stackit"))

	requireAuth := middleware.Auth(d.Auth)
	optionalAuth := middleware.OptionalAuth(d.Auth)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.TokenTTL, d.SecureCookies)
	questionHandler := handler.NewQuestionHandler(d.Questions)
	tagHandler := handler.NewTagHandler(d.Tags)
	answerHandler := handler.NewAnswerHandler(d.Answers)
	voteHandler := handler.NewVoteHandler(d.Votes)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	userHandler := handler.NewUserHandler(d.Users)
	adminHandler := handler.NewAdminHandler(d.Users)
	aiHandler := handler.NewAIHandler(d.AI)
	uploadHandler := handler.NewUploadHandler(d.Images)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Public reads ---
	e.GET("/questions", questionHandler.List)
	e.GET("/questions/:id", questionHandler.Get, optionalAuth)
	e.GET("/tags", tagHandler.List)
	e.GET("/users", userHandler.List)

	// --- Authenticated writes ---
	e.POST("/questions", questionHandler.Create, requireAuth)
	e.POST("/answers", answerHandler.Create, requireAuth)
	e.PATCH("/answers/:id/accept", answerHandler.Accept, requireAuth)
	e.POST("/votes", voteHandler.Cast, requireAuth)
	e.GET("/notifications", notificationHandler.List, requireAuth)
	e.PATCH("/notifications", notificationHandler.MarkRead, requireAuth)
	e.POST("/ai/generate-answer", aiHandler.Generate, requireAuth)
	e.POST("/upload/image", uploadHandler.Image, requireAuth)

	// --- Admin console ---
	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness, pings dependencies
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
