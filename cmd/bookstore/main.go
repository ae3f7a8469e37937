package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/online_bookstore/internal/authclient"
	"github.com/Skotchmaster/online_bookstore/internal/config"
	"github.com/Skotchmaster/online_bookstore/internal/db"
	"github.com/Skotchmaster/online_bookstore/internal/httpserver"
	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/middleware/auth"
	"github.com/Skotchmaster/online_bookstore/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/online_bookstore/internal/middleware/logging"
	"github.com/Skotchmaster/online_bookstore/internal/models"
	"github.com/Skotchmaster/online_bookstore/internal/mykafka"
	"github.com/Skotchmaster/online_bookstore/internal/notify"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/search"
	"github.com/Skotchmaster/online_bookstore/internal/service"
)

func main() {
	config.LoadEnvFile(".env")
	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	baseCtx := logging.IntoContext(context.Background(), logger)

	ctx, cancel := context.WithTimeout(baseCtx, 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBDriver)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	r := repo.New(gdb)
	users := &service.UserService{Repo: r}
	owner := models.Identity{OpenID: cfg.OwnerOpenID, Name: cfg.OwnerName, Email: cfg.OwnerEmail}
	if _, err := users.BootstrapOwner(baseCtx, owner); err != nil {
		log.Fatalf("owner bootstrap: %v", err)
	}

	var (
		producer *mykafka.Producer
		events   service.EventPublisher
		notifier notify.Notifier = &notify.LogNotifier{Log: logger}
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		events = producer
		notifier = &notify.KafkaNotifier{Publisher: producer}
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS not set")
	}

	catalog := &service.CatalogService{Repo: r, Events: events}
	if cfg.SearchBackend == config.SearchBackendElasticsearch {
		esClient, err := search.NewClient(baseCtx, search.ClientConfig{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index := search.NewBookIndex(esClient, cfg.ESIndex)
		if err := index.EnsureIndex(baseCtx); err != nil {
			log.Fatalf("elasticsearch index: %v", err)
		}
		if n, err := index.Reindex(baseCtx, r); err != nil {
			logger.Warn("es_reindex_failed", "indexed", n, "error", err)
		} else {
			logger.Info("es_reindexed", "index", cfg.ESIndex, "books", n)
		}
		catalog.Searcher = index
		catalog.Indexer = index
	}

	var refresher auth.Refresher
	if cfg.AuthHTTPURL != "" {
		refresher = authclient.NewClient(cfg.AuthHTTPURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
			ExposeHeaders:    []string{"X-CSRF-Token"},
		}))
	} else {
		e.Use(echomw.CORS())
	}
	if cfg.CSRFEnabled {
		e.Use(csrf.Middleware(csrf.Config{
			Secure:         cfg.CookieSecure,
			AllowedOrigins: cfg.CORSOrigins,
			SkipPrefixes:   []string{"/health"},
		}))
	}

	httpserver.Register(e, &httpserver.Deps{
		DB:     gdb,
		Gate:   auth.NewAutoRefreshMiddleware(cfg.JWTSecret, refresher, users, cfg.CookieSecure),
		Books:  &httpserver.BookHTTP{Svc: catalog},
		Refs:   &httpserver.ReferenceHTTP{Svc: &service.ReferenceService{Repo: r, Events: events}},
		Orders: &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Notifier: notifier}},
		Users:  &httpserver.UserHTTP{Svc: users, CookieSecure: cfg.CookieSecure},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	logger.Info("shutdown complete")
}
