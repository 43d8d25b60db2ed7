package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	kafkaevents "github.com/ogurasousui/simple-orgchart/internal/adapters/events/kafka"
	"github.com/ogurasousui/simple-orgchart/internal/adapters/repository/memory"
	"github.com/ogurasousui/simple-orgchart/internal/adapters/repository/postgres"
	"github.com/ogurasousui/simple-orgchart/internal/core/appcontroller"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"github.com/ogurasousui/simple-orgchart/internal/platform/config"
	pg "github.com/ogurasousui/simple-orgchart/internal/platform/db/postgres"
	"github.com/ogurasousui/simple-orgchart/internal/platform/logging"
	"github.com/ogurasousui/simple-orgchart/internal/platform/metrics"
	"github.com/ogurasousui/simple-orgchart/internal/platform/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build logger")
	}
	ctx = logger.WithContext(ctx)

	repo, tx, closeStorage := mustOpenStorage(ctx, cfg, logger)
	defer closeStorage()

	controller := appcontroller.New(logger)
	factory := orgchart.NewAddNewEmployeeCommandFactory(orgchart.AddNewEmployeeSources{}, repo, controller, tx)
	if err := appcontroller.RegisterCommand(controller, factory); err != nil {
		logger.Fatal().Err(err).Msg("failed to register add new employee command")
	}

	group, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.ListenAddr != "" {
		workflowMetrics, err := metrics.NewWorkflowMetrics()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize metrics")
		}
		appcontroller.Subscribe(controller, workflowMetrics.EmployeeAdded)
		group.Go(func() error {
			return workflowMetrics.Serve(gctx, cfg.Metrics.ListenAddr)
		})
	}

	if cfg.Kafka.Enabled {
		sp, err := kafkaevents.NewSyncProducer(cfg.Kafka)
		if err != nil {
			logger.Fatal().Err(err).Msg("kafka producer init failed")
		}
		publisher := kafkaevents.NewEmployeeAddedPublisher(sp, cfg.Kafka.Topic, cfg.Kafka.ClientID, logger)
		defer func() { _ = publisher.Close() }()
		appcontroller.Subscribe(controller, publisher.Publish)
	}

	grpcServer := server.New(cfg.Server.ListenAddr, logger, controller, orgchart.NewQueryService(repo, tx))
	group.Go(func() error {
		return grpcServer.Run(gctx)
	})

	if err := group.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}

func mustOpenStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (orgchart.Repository, orgchart.TransactionManager, func()) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		dbPool, err := pg.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize database pool")
		}
		return postgres.NewEmployeeRepository(dbPool), pg.NewTransactionManager(dbPool), dbPool.Close
	default:
		logger.Info().Msg("using in-memory employee repository")
		return memory.NewEmployeeRepository(), nil, func() {}
	}
}
