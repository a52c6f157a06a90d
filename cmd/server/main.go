package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"learnmate/internal/audio"
	"learnmate/internal/config"
	"learnmate/internal/handlers"
	"learnmate/internal/logger"
	"learnmate/internal/metrics"
	"learnmate/internal/notify"
	"learnmate/internal/repository"
	"learnmate/internal/security"
	"learnmate/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startup := handlers.NewStartupStatus()

	// Open the store (sql, redis or memory)
	startup.SetCurrentStep(handlers.StepStore)
	store, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", "backend", cfg.StoreBackend, "error", err)
	}
	defer store.Close()
	log.Info("store connected", "backend", store.Backend)
	startup.CompleteStep(handlers.StepStore)

	// Run migrations
	startup.SetCurrentStep(handlers.StepMigrations)
	applied, err := store.Migrate(ctx)
	if err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	for _, name := range applied {
		log.Info("applied migration", "file", name)
	}
	startup.CompleteStep(handlers.StepMigrations)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(store.KV)
	sessionRepo := repository.NewSessionRepository(store.KV)
	progressRepo := repository.NewProgressRepository(store.KV)
	lessonRepo := repository.NewLessonRepository(store.KV)
	roomRepo := repository.NewRoomRepository(store.KV)

	// Initialize services
	startup.SetCurrentStep(handlers.StepServices)
	verifier, err := security.NewCredentialVerifier(cfg.CredentialScheme)
	if err != nil {
		log.Fatal("invalid credential scheme", "error", err)
	}
	if cfg.IsProduction() && cfg.ShareSecret == "change-me-in-production" {
		log.Warn("SHARE_SECRET is the default value; share links can be forged")
	}

	m := metrics.New()
	notifier := buildNotifier(ctx, cfg, log)

	accountService := service.NewAccountService(accountRepo, verifier)
	sessionService := service.NewSessionService(sessionRepo, accountService)
	authService := service.NewAuthService(accountService, sessionService, notifier, m, log)
	learningService := service.NewLearningService(
		progressRepo,
		lessonRepo,
		sessionService,
		security.NewShareSigner(cfg.ShareSecret, cfg.ShareTTL),
		notifier,
		m,
		log,
		cfg.AppBaseURL,
	)
	roomService := service.NewRoomService(roomRepo, sessionService, m, log)

	audioDir := filepath.Join(cfg.StaticFilesPath, "audio")
	ttsService := audio.NewTTSService(audioDir, cfg.TTSEndpoint, cfg.TTSEnabled)
	startup.CompleteStep(handlers.StepServices)

	// Restore the mirrored session, advancing its streak
	startup.SetCurrentStep(handlers.StepSession)
	if account, err := sessionService.Restore(ctx); err != nil {
		log.Warn("failed to restore session", "error", err)
	} else if account != nil {
		log.Info("session restored", "account_id", account.ID, "streak", account.Streak)
	}
	startup.CompleteStep(handlers.StepSession)

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	defer rateLimiter.Close()

	router := &handlers.Router{
		Middleware:     handlers.NewMiddleware(sessionService, log, m, rateLimiter),
		Startup:        startup,
		Auth:           handlers.NewAuthHandler(authService, sessionService, log),
		Learning:       handlers.NewLearningHandler(learningService, ttsService, log),
		Quiz:           handlers.NewQuizHandler(log),
		Flashcards:     handlers.NewFlashcardHandler(log),
		Rooms:          handlers.NewRoomHandler(roomService, log),
		AudioDir:       audioDir,
		StaticDir:      cfg.StaticFilesPath,
		MetricsHandler: m.Handler(),
	}

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()
	startup.MarkReady()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildNotifier always logs milestones and also emails them when SES is configured
func buildNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger) notify.Notifier {
	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if cfg.SESFromEmail == "" {
		return notifiers
	}

	ses, err := notify.NewSESNotifier(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, log)
	if err != nil {
		log.Warn("email notifications disabled", "error", err)
		return notifiers
	}
	log.Info("email notifications enabled", "from", cfg.SESFromEmail)
	return append(notifiers, ses)
}
