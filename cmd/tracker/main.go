package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fintracker/internal/achievement"
	"fintracker/internal/budget"
	"fintracker/internal/config"
	cronrunner "fintracker/internal/cron"
	"fintracker/internal/dashboard"
	"fintracker/internal/db"
	"fintracker/internal/handler"
	"fintracker/internal/ledger"
	"fintracker/internal/logger"
	"fintracker/internal/middleware"
	"fintracker/internal/quote"
	gormrepository "fintracker/internal/repository/gorm"
	"fintracker/internal/stocks"
)

func main() {
	root := &cobra.Command{
		Use:          "tracker",
		Short:        "Personal finance tracker service",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfgPath := os.Getenv("FT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if raw := os.Getenv("FT_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}
	return config.Load(cfgPath, envOnly)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dbConn, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close(dbConn)
			if err := db.AutoMigrate(dbConn); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg config.Config) error {
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		log.Error("db open failed", zap.Error(err))
		return err
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		log.Error("auto-migrate failed", zap.Error(err))
		return err
	}

	store := gormrepository.New(dbConn.Gorm)

	quoteHTTP := &http.Client{Timeout: cfg.Quote.Timeout}
	quoteClient := quote.NewClient(quoteHTTP, cfg.Quote.BaseURL)
	quoteCache := quote.NewCache(quoteClient, cfg.Quote.CacheTTL)

	ledgerSvc := &ledger.Service{
		Repo:       store,
		Logger:     log,
		DeleteLock: time.Duration(cfg.Ledger.DeleteLockHours) * time.Hour,
	}
	budgetSvc := &budget.Service{
		Repo:       store,
		LockPeriod: time.Duration(cfg.Budget.LockDays) * 24 * time.Hour,
	}
	achievementSvc := &achievement.Service{
		Repo:                store,
		Logger:              log,
		DefaultMonthlyLimit: cfg.Budget.DefaultMonthlyLimit,
	}
	stockSvc := &stocks.Service{
		Repo:   store,
		Quotes: quoteCache,
		Logger: log,
	}
	dashboardSvc := &dashboard.Service{
		Repo:   store,
		Stocks: stockSvc,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := achievementSvc.EnsureSeeded(ctx); err != nil {
		log.Warn("achievement catalog seed failed", zap.Error(err))
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RequestLog(log))

	(&handler.HealthHandler{DB: dbConn.Gorm}).Register(engine)
	(&handler.RecordHandler{Service: ledgerSvc}).Register(engine)
	(&handler.BudgetHandler{Service: budgetSvc}).Register(engine)
	(&handler.StockHandler{Service: stockSvc}).Register(engine)
	(&handler.AchievementHandler{Service: achievementSvc}).Register(engine)
	(&handler.DashboardHandler{Service: dashboardSvc}).Register(engine)

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(log, ctx)
		_, err := cronRunner.Add(cfg.Cron.QuoteWarm, func(ctx context.Context) {
			symbols, err := stockSvc.HeldSymbols(ctx)
			if err != nil {
				log.Warn("quote warm: listing held symbols failed", zap.Error(err))
				return
			}
			quoteCache.Warm(ctx, symbols)
		})
		if err != nil {
			log.Warn("cron register quote warm failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	if cfg.Quote.StreamEnabled {
		stream := &quote.Stream{URL: cfg.Quote.StreamURL, Cache: quoteCache, Logger: log}
		go func() {
			if err := stream.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("quote stream stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	return nil
}
