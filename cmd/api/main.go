package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockpot-app/stockpot/internal/audit"
	auditStore "github.com/stockpot-app/stockpot/internal/audit/store"
	"github.com/stockpot-app/stockpot/internal/catalog"
	catalogStore "github.com/stockpot-app/stockpot/internal/catalog/store"
	"github.com/stockpot-app/stockpot/internal/config"
	"github.com/stockpot-app/stockpot/internal/database"
	stockpotHttp "github.com/stockpot-app/stockpot/internal/http"
	historyHandler "github.com/stockpot-app/stockpot/internal/http/history"
	ingestHandler "github.com/stockpot-app/stockpot/internal/http/ingest"
	triageHandler "github.com/stockpot-app/stockpot/internal/http/triage"
	"github.com/stockpot-app/stockpot/internal/ingest"
	ingestStore "github.com/stockpot-app/stockpot/internal/ingest/store"
	"github.com/stockpot-app/stockpot/internal/invoicefile"
	"github.com/stockpot-app/stockpot/internal/triage"
	triageStore "github.com/stockpot-app/stockpot/internal/triage/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		catalogService = catalog.NewService(catalogStore.New(db))
		triageService  = triage.NewService(triageStore.New(db))
		auditEmitter   = audit.NewEmitter(auditStore.New(db))
		fileService    = invoicefile.NewService()
		ingestService  = ingest.NewService(ingestStore.New(db), catalogService, triageService, auditEmitter)
	)

	var (
		ingestH  = ingestHandler.NewHandler(ingestService, fileService, cfg.Ingest.MaxUploadBytes)
		triageH  = triageHandler.NewHandler(triageService)
		historyH = historyHandler.NewHandler(ingestService, catalogService)
	)

	router := stockpotHttp.New(cfg.Auth.JWTSecret, ingestH, triageH, historyH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
