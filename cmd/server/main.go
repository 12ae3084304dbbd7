package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mehulj/noteshare/internal/auth"
	"github.com/mehulj/noteshare/internal/config"
	"github.com/mehulj/noteshare/internal/handlers"
	"github.com/mehulj/noteshare/internal/service"
	"github.com/mehulj/noteshare/internal/storage/sqlite"
	"github.com/mehulj/noteshare/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, slog.Default())
	noteSvc := service.NewNoteService(store, slog.Default())

	router := handlers.NewRouter(authSvc, noteSvc, jwtManager, cfg.RateLimitRPM)

	// HTTP/2 without TLS, so clients can multiplex over plain HTTP.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
