package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ganeshmurthy/product-recommender-system/internal/config"
	"github.com/ganeshmurthy/product-recommender-system/internal/events"
	"github.com/ganeshmurthy/product-recommender-system/internal/httpserver"
	"github.com/ganeshmurthy/product-recommender-system/internal/logging"
	loggingmw "github.com/ganeshmurthy/product-recommender-system/internal/middleware/logging"
	"github.com/ganeshmurthy/product-recommender-system/internal/models"
	"github.com/ganeshmurthy/product-recommender-system/internal/repo"
	"github.com/ganeshmurthy/product-recommender-system/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New("cart", cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.AutoMigrate(&models.CartItem{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var recorder events.Recorder = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.InteractionTopic)
		recorder = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, interaction events are discarded")
	}

	cartService := &service.CartService{
		Store:    &repo.GormRepo{DB: db},
		Recorder: recorder,
	}

	httpserver.Register(e, &httpserver.Deps{
		CartHandler: &httpserver.CartHTTP{Svc: cartService},
		JWTSecret:   cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting cart service", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
