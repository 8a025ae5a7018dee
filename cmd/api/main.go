package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/pmiguelc/transita/internal/config"
	"github.com/pmiguelc/transita/internal/database"
	"github.com/pmiguelc/transita/internal/export"
	transitaHttp "github.com/pmiguelc/transita/internal/http"
	exportHandler "github.com/pmiguelc/transita/internal/http/export"
	manifestHandler "github.com/pmiguelc/transita/internal/http/manifest"
	transferHandler "github.com/pmiguelc/transita/internal/http/transfer"
	"github.com/pmiguelc/transita/internal/importer"
	"github.com/pmiguelc/transita/internal/transfer"
	transferStore "github.com/pmiguelc/transita/internal/transfer/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	var (
		transferService = transfer.NewService(transferStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(transferService)
	)

	var (
		transferH = transferHandler.NewHandler(transferService)
		manifestH = manifestHandler.NewHandler(importService, transferService)
		exportH   = exportHandler.NewHandler(exportService)
	)

	router := transitaHttp.New(transferH, manifestH, exportH, transitaHttp.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
