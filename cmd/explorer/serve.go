package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/wildfire-explorer/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/wildfire-explorer/internal/explorer"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	"github.com/couchcryptid/wildfire-explorer/internal/snapshot"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the linked views over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		return err
	}

	clock := clockwork.NewRealClock()
	store := snapshot.NewStore(clock)
	renderers := explorer.Fanout{store}

	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		session := uuid.NewString()
		publisher = kafkaadapter.NewPublisher(cfg, session, metrics, logger)
		renderers = append(renderers, publisher)
		logger.Info("kafka view publishing enabled", "topic", cfg.KafkaViewTopic, "session", session)
	}

	engine, err := explorer.New(ds, renderers, explorer.NewScheduler(clock, cfg.PlaybackInterval), logger, metrics)
	if err != nil {
		return err
	}
	engine.Render()

	srv := httpadapter.NewServer(cfg.HTTPAddr, engine, engine, store, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if err != nil {
		logger.Error("http server error", "error", err)
	}

	engine.Close()
	if publisher != nil {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("kafka publisher close error", "error", cerr)
		}
	}

	logger.Info("shutdown complete")
	return err
}
