package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	webAdapter "restock-agent/internal/adapters/web"
	"restock-agent/internal/ai"
	"restock-agent/internal/app"
	"restock-agent/internal/config"
	"restock-agent/internal/core"
	"restock-agent/internal/db"
	"restock-agent/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level)

	if err := runMigrations(cfg.Database.URL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database.URL, int32(cfg.Database.MaxConns))
	if err != nil {
		log.Error("database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("database connected")

	userService := core.NewUserService(pool)
	supplierService := core.NewSupplierService(pool)
	productService := core.NewProductService(pool)
	sessionService := core.NewSessionService(pool)

	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; email generation will fail")
	}
	mailer := ai.NewMailer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	svc := app.NewAppService(userService, supplierService, productService, sessionService, mailer)
	handler := webAdapter.NewHandler(svc, log, cfg.CORS.AllowedOrigins, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	log.Info("graceful shutdown complete")
}
