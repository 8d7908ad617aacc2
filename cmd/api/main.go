package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/dropdesk/dropdesk-go/internal/config"
	"github.com/dropdesk/dropdesk-go/internal/crypto"
	"github.com/dropdesk/dropdesk-go/internal/handler"
	"github.com/dropdesk/dropdesk-go/internal/mailer"
	"github.com/dropdesk/dropdesk-go/internal/middleware"
	"github.com/dropdesk/dropdesk-go/internal/repository"
	"github.com/dropdesk/dropdesk-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(db, cfg.DatabaseDriver); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	authService := service.NewAuthService(
		userRepo, sessionRepo, mailer.LogMailer{},
		cfg.SecretKey, cfg.ResetTokenMaxAge, cfg.SessionTTL, cfg.BaseURL,
	)
	authHandler := handler.NewAuthHandler(authService)

	catalogService := service.NewCatalogService(catalogRepo)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		r.Post("/api/v1/auth/password-reset", authHandler.HandleRequestPasswordReset)
		r.Post("/api/v1/auth/password-reset/confirm", authHandler.HandleConfirmPasswordReset)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(authService))
		r.Post("/api/v1/auth/logout", authHandler.HandleLogout)
		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Delete("/api/v1/auth/me", authHandler.HandleDeleteMe)

		r.Get("/api/v1/stores", catalogHandler.HandleListStores)
		r.Post("/api/v1/stores", catalogHandler.HandleCreateStore)
		r.Get("/api/v1/products", catalogHandler.HandleListProducts)
		r.Post("/api/v1/products", catalogHandler.HandleCreateProduct)
		r.Get("/api/v1/orders", catalogHandler.HandleListOrders)
		r.Post("/api/v1/orders", catalogHandler.HandleCreateOrder)
	})

	// The vault requires its own key. Without one the rest of the app
	// still runs; every vault code path stays unmounted.
	cipher, err := crypto.NewSecretCipher(cfg.VaultKey)
	if err != nil {
		slog.Error("VAULT_ENCRYPTION_KEY not usable, vault routes disabled", "error", err)
	} else {
		vaultRepo := repository.NewSupplierCredentialRepository(db)
		vaultService := service.NewVaultService(vaultRepo, cipher)
		vaultHandler := handler.NewVaultHandler(vaultService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(authService))
			r.Get("/api/v1/vault", vaultHandler.HandleListCredentials)
			r.Post("/api/v1/vault", vaultHandler.HandleCreateCredential)
			r.Post("/api/v1/vault/generate", vaultHandler.HandleGenerateSecret)
			r.Put("/api/v1/vault/{credential_id}/secret", vaultHandler.HandleSetSecret)
			r.Get("/api/v1/vault/{credential_id}/secret", vaultHandler.HandleRevealSecret)
			r.Delete("/api/v1/vault/{credential_id}", vaultHandler.HandleDeleteCredential)
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
