package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/mverma16/splitbill/internal/auth"
	"github.com/mverma16/splitbill/internal/config"
	"github.com/mverma16/splitbill/internal/ocr"
	"github.com/mverma16/splitbill/internal/router"
	"github.com/mverma16/splitbill/internal/service"
	"github.com/mverma16/splitbill/internal/storage/sqlite"
	"github.com/mverma16/splitbill/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if err := auth.EnsureAdmin(context.Background(), store, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		slog.Error("Failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "error", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)
	recognizer := ocr.NewClient(cfg.OCRAPIKey)

	authSvc := service.NewAuthService(authenticator, jwtManager)
	contactSvc := service.NewContactService(store)
	billSvc := service.NewBillService(store, recognizer)

	engine := router.New(cfg, authSvc, contactSvc, billSvc, jwtManager)

	addr := ":" + cfg.ServerPort
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, engine); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
