package main

import (
	"context"
	"flag"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/online_bookstore/internal/config"
	"github.com/Skotchmaster/online_bookstore/internal/db"
	"github.com/Skotchmaster/online_bookstore/internal/logging"
	"github.com/Skotchmaster/online_bookstore/internal/mykafka"
	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/search"
	"github.com/Skotchmaster/online_bookstore/internal/seed"
	"github.com/Skotchmaster/online_bookstore/internal/service"
)

func main() {
	sqlitePath := flag.String("sqlite", "", "seed a SQLite file instead of DATABASE_URL")
	envFile := flag.String("env", ".env", "env file to load")
	flag.Parse()

	config.LoadEnvFile(*envFile)
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName+"-seed")
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), time.Minute)
	defer cancel()

	reqs := cfg.SearchRequirements()
	if *sqlitePath == "" {
		reqs = append(reqs, config.Requirement{Key: "DATABASE_URL", Set: cfg.DatabaseURL != ""})
	}
	if err := config.CheckRequired(reqs...); err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		gdb *gorm.DB
		err error
	)
	if *sqlitePath != "" {
		gdb, err = db.OpenSQLite(ctx, *sqlitePath)
	} else {
		gdb, err = db.Open(ctx, cfg.DatabaseURL, cfg.DBDriver)
	}
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close(gdb)

	var events service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := mykafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		events = producer
	}

	r := repo.New(gdb)
	catalog := &service.CatalogService{Repo: r, Events: events}
	if cfg.SearchBackend == config.SearchBackendElasticsearch {
		esClient, err := search.NewClient(ctx, search.ClientConfig{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index := search.NewBookIndex(esClient, cfg.ESIndex)
		if err := index.EnsureIndex(ctx); err != nil {
			log.Fatalf("elasticsearch index: %v", err)
		}
		catalog.Indexer = index
	}

	if _, err := seed.Run(ctx, &service.ReferenceService{Repo: r, Events: events}, catalog); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
