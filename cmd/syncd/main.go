package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	"github.com/marketfeed/trendyol-sync/cmd/syncd/config"
	"github.com/marketfeed/trendyol-sync/internal/batch"
	"github.com/marketfeed/trendyol-sync/internal/feed"
	"github.com/marketfeed/trendyol-sync/internal/handler"
	"github.com/marketfeed/trendyol-sync/internal/platform/rabbitmq"
	"github.com/marketfeed/trendyol-sync/internal/platform/storage"
	"github.com/marketfeed/trendyol-sync/internal/syncer"
	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/marketfeed/trendyol-sync/internal/verify"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching feed files.
	UserAgent = "trendyol-sync/0.1.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	store := storage.NewPostgres(pgDB)

	marketplace := trendyol.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		trendyol.Config{
			SellerID:  cfg.Trendyol.SellerID,
			APIKey:    cfg.Trendyol.APIKey,
			APISecret: cfg.Trendyol.APISecret,
		},
	)

	tracker := batch.NewTracker(marketplace, store, batch.WithChunkSize(cfg.ChunkSize))

	syn := syncer.NewSyncer(
		feed.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent),
		feed.NewDecoder(),
		store,
		tracker,
	)

	verifier := verify.NewVerifier(store, marketplace, tracker)

	han := handler.NewHandler(conn, syn, tracker, verifier, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.SyncQueue, cfg.RabbitMQ.BatchQueue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Msg("trendyol sync up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumers to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
