package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/config"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/generation"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/llm"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/loaders"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/routes"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Warning: Error loading .env file", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup := utils.InitLogger(cfg)
	defer cleanup()

	utils.Zlog.Info("Starting application",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.ServerPort),
		zap.String("generation_provider", cfg.GenerationProvider))

	ctx := context.Background()

	var db *loaders.PostgresClient
	if cfg.DatabaseURL != "" {
		db, err = loaders.NewPostgresClient(cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			utils.Zlog.Error("Failed to create database client", zap.Error(err))
			os.Exit(1)
		}
		defer func() {
			if err := db.Close(); err != nil {
				utils.Zlog.Error("Error closing database connection", zap.Error(err))
			}
		}()
	} else {
		utils.Zlog.Info("DATABASE_URL not set, requests must carry inline place and stats snapshots")
	}

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		utils.Zlog.Error("Failed to create generation client", zap.Error(err))
		os.Exit(1)
	}
	registry := generation.NewRegistry(client,
		generation.WithIdleTTL(cfg.SessionIdleTTL),
		generation.WithMaxSessions(cfg.MaxSessions))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	routes.SetupRoutes(router, registry, db, cfg)

	// lucky-bag-setup waits on two generations, each bounded by GenerationTimeout
	writeTimeout := cfg.GenerationTimeout + 15*time.Second

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	utils.Zlog.Info("Server exited")
}
