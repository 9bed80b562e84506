package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/render"
	"github.com/Skotchmaster/storefront/internal/repository"
	"github.com/Skotchmaster/storefront/internal/session"
	httpserver "github.com/Skotchmaster/storefront/internal/transport/http"
	"github.com/Skotchmaster/storefront/internal/upload"
)

const sessionTTL = 7 * 24 * time.Hour

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("DB init error: %v", err)
	}

	if configuration.SESSION_SECRET == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	sessionSecret := []byte(configuration.SESSION_SECRET)

	var sessions session.Store
	var redisStore *session.RedisStore
	if configuration.REDIS_ADDR != "" {
		redisStore, err = session.NewRedisStore(configuration.REDIS_ADDR, configuration.REDIS_PASSWORD, sessionTTL)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		sessions = redisStore
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory sessions")
		sessions = session.NewMemoryStore()
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	}

	uploads, err := upload.NewDiskStore(configuration.UPLOAD_DIR)
	if err != nil {
		log.Fatal(err)
	}

	users := repository.NewUsers(db)
	products := repository.NewProducts(db)

	productHandler := &handlers.ProductHandler{
		Products: products,
		Uploads:  uploads,
		Producer: producer,
	}
	searchHandler := &handlers.SearchHandler{Products: products}
	if configuration.ES_URL != "" {
		esc, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		productHandler.ES = esc
		productHandler.Index = "product"
		searchHandler.ES = esc
		searchHandler.Index = "product"
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(session.Middleware(sessions, sessionSecret, sessionTTL))
	e.Validator = handlers.NewValidator()

	renderer, err := render.New(configuration.TEMPLATE_GLOB)
	if err != nil {
		log.Fatalf("template init error: %v", err)
	}
	e.Renderer = renderer
	e.Static("/static", "static")

	deps := httpserver.Deps{
		Gate:           &auth.Gate{Users: users},
		AuthHandler:    &handlers.AuthHandler{Users: users, Producer: producer},
		ProductHandler: productHandler,
		CartHandler:    &handlers.CartHandler{Products: products, Producer: producer},
		SearchHandler:  searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
