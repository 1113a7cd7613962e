// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nechmerust/sanctuary-api/internal/config"
	"github.com/nechmerust/sanctuary-api/internal/database"
	"github.com/nechmerust/sanctuary-api/internal/handler"
	"github.com/nechmerust/sanctuary-api/internal/notifier"
	"github.com/nechmerust/sanctuary-api/internal/repository"
	"github.com/nechmerust/sanctuary-api/internal/service"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	cfg := config.Load()
	ctx := context.Background()

	// ── 1. Storage ────────────────────────────────────────────────────────
	var (
		eventRepo     repository.EventRepository
		regRepo       repository.RegistrationRepository
		animalRepo    repository.AnimalRepository
		contactRepo   repository.ContactRepository
		volunteerRepo repository.VolunteerRepository
	)
	if cfg.UseMemoryStore {
		log.Info("using in-memory store")
		mem := repository.NewMemory()
		eventRepo = mem
		regRepo = mem
		animalRepo = mem
		contactRepo = mem
		volunteerRepo = repository.NewMemoryVolunteerRepo(mem)
	} else {
		if err := database.Migrate(cfg.DB); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		pool, err := database.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		log.Info("connected to postgres", "db", cfg.DB.Name)

		eventRepo = repository.NewPostgresEventRepo(pool)
		regRepo = repository.NewPostgresRegistrationRepo(pool)
		animalRepo = repository.NewPostgresAnimalRepo(pool)
		contactRepo = repository.NewPostgresContactRepo(pool)
		volunteerRepo = repository.NewPostgresVolunteerRepo(pool)
	}

	// ── 2. Notifier ───────────────────────────────────────────────────────
	var notify notifier.Notifier
	if cfg.SMTP.Configured() {
		notify = notifier.NewSMTPNotifier(cfg.SMTP, cfg.NotifyRecipient)
		log.Info("smtp notifier enabled", "host", cfg.SMTP.Host)
	} else {
		notify = notifier.NewLogNotifier(log)
		log.Info("smtp not configured, notifications are log-only")
	}

	// ── 3. Wire up layers ─────────────────────────────────────────────────
	regSvc := service.NewRegistrationService(eventRepo, regRepo, notify, log, cfg.NotifyTimeout)
	subSvc := service.NewSubmissionService(contactRepo, volunteerRepo, notify, log, cfg.NotifyTimeout)
	contentSvc := service.NewContentService(eventRepo, animalRepo, cfg.CacheTTL)
	h := handler.New(regSvc, subSvc, contentSvc, log)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := handler.NewRouter(h, log)

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
