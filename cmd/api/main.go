package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stackit/qna-api/internal/api"
	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
	"github.com/stackit/qna-api/internal/core/service"
	"github.com/stackit/qna-api/internal/infrastructure/ai"
	"github.com/stackit/qna-api/internal/infrastructure/config"
	"github.com/stackit/qna-api/internal/infrastructure/db/postgres"
	"github.com/stackit/qna-api/internal/infrastructure/db/redis"
	"github.com/stackit/qna-api/internal/infrastructure/queue"
	"github.com/stackit/qna-api/internal/infrastructure/storage"
	"github.com/stackit/qna-api/pkg/logger"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Service: "qna-api",
		Pretty:  cfg.Env == "development",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	db, err := postgres.Connect(cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	images, err := storage.NewImageStore(ctx, storage.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		Bucket:    cfg.Minio.Bucket,
		UseSSL:    cfg.Minio.UseSSL,
		PublicURL: cfg.Minio.PublicURL,
	})
	if err != nil {
		return fmt.Errorf("image store: %w", err)
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	answerRepo := postgres.NewAnswerRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	if err := seedBotAccount(ctx, userRepo, cfg.AI.BotEmail, log); err != nil {
		return fmt.Errorf("seed bot account: %w", err)
	}

	// --- Services ---
	notifier := service.NewNotificationEmitter(notificationRepo, log)

	var generator ports.AnswerGenerator
	if cfg.AI.Endpoint != "" {
		generator = ai.NewHTTPGenerator(cfg.AI.Endpoint, cfg.AI.APIKey)
	} else {
		generator = ai.NewTemplateGenerator()
	}

	aiSvc := service.NewAIService(
		questionRepo, answerRepo, userRepo,
		generator,
		redis.NewScheduleGuard(rdb),
		notifier,
		cfg.AI.BotEmail,
		log,
	)
	scheduler := queue.NewScheduler(cfg.AI.Workers, aiSvc.RunJob, log)
	aiSvc.AttachScheduler(scheduler)
	scheduler.Start(ctx)

	deps := api.Deps{
		Auth:          service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL),
		Questions:     service.NewQuestionService(questionRepo, tagRepo, scheduler, log),
		Tags:          service.NewTagService(tagRepo),
		Answers:       service.NewAnswerService(answerRepo, questionRepo, userRepo, notifier, log),
		Votes:         service.NewVoteService(voteRepo, questionRepo, answerRepo, log),
		Notifications: service.NewNotificationService(notificationRepo),
		Users:         service.NewUserService(userRepo, log),
		AI:            aiSvc,
		Images:        images,
		DB:            db,
		Redis:         rdb,
		TokenTTL:      tokenTTL,
		SecureCookies: cfg.Env == "production",
		Log:           log,
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("stopped")
	return nil
}

// seedBotAccount ensures the AI bot user exists. The bot authors every
// generated answer; its password is random and never shared, so the account
// cannot be logged into.
func seedBotAccount(ctx context.Context, users ports.UserRepository, email string, log zerolog.Logger) error {
	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	bot := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "AI",
		LastName:     "Assistant",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := users.Create(ctx, bot); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("created ai bot account")
	return nil
}
