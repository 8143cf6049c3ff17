package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"briefly/briefly/config"
	"briefly/briefly/controllers"
	"briefly/briefly/routes"
	"briefly/briefly/services/extractor"
	"briefly/briefly/services/fetcher"
	"briefly/briefly/services/llm"
	"briefly/briefly/sources/db"
	"briefly/briefly/sources/db/dao"
	"briefly/briefly/sources/storage"
	"briefly/briefly/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.ErrorLogger.Error("config error", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	userDAO := dao.NewUserDAO(database.DB)
	summaryDAO := dao.NewSummaryDAO(database.DB)

	var articleFetcher fetcher.Fetcher = fetcher.NewHTTPFetcher(cfg.Fetch)
	if cfg.Fetch.Rendered {
		rendered, err := fetcher.NewRenderedFetcher(cfg.Fetch)
		if err != nil {
			logging.ErrorLogger.Error("rendered fetcher init error", zap.Error(err))
			os.Exit(1)
		}
		defer rendered.Close()
		articleFetcher = rendered
	}

	var archive *storage.ArchiveClient
	if cfg.Archive.Enabled {
		archive, err = storage.NewArchiveClient(cfg.Archive)
		if err != nil {
			logging.ErrorLogger.Error("archive connection error", zap.Error(err))
			os.Exit(1)
		}
	}

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	healthCtrl := controllers.NewHealthController()
	summariesCtrl := controllers.NewSummariesController(
		summaryDAO,
		articleFetcher,
		extractor.New(cfg.Extractor),
		llm.NewGroqClient(cfg.Groq),
		archive,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/api", routes.SummariesRoutes(summariesCtrl, cfg))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
