package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/simple-orgchart/internal/adapters/cli"
	"github.com/ogurasousui/simple-orgchart/internal/adapters/repository/memory"
	"github.com/ogurasousui/simple-orgchart/internal/adapters/repository/postgres"
	"github.com/ogurasousui/simple-orgchart/internal/core/appcontroller"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"github.com/ogurasousui/simple-orgchart/internal/platform/config"
	pg "github.com/ogurasousui/simple-orgchart/internal/platform/db/postgres"
	"github.com/ogurasousui/simple-orgchart/internal/platform/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx := context.Background()

	_ = godotenv.Load(".env")

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	logCfg := cfg.Log
	logCfg.Format = logging.FormatConsole
	logger, err := logging.New(logCfg, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build logger")
	}
	ctx = logger.WithContext(ctx)

	var (
		repo orgchart.Repository = memory.NewEmployeeRepository()
		tx   orgchart.TransactionManager
	)
	if cfg.Storage.Driver == config.StorageDriverPostgres {
		dbPool, err := pg.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize database pool")
		}
		defer dbPool.Close()
		repo = postgres.NewEmployeeRepository(dbPool)
		tx = pg.NewTransactionManager(dbPool)
	}

	console := cli.NewConsole(os.Stdin, os.Stdout)
	view := cli.NewTreeView(console)
	controller := appcontroller.New(logger)
	presenter := orgchart.NewOrgChartPresenter(view, controller, repo)

	factory := orgchart.NewAddNewEmployeeCommandFactory(orgchart.AddNewEmployeeSources{
		Info:    cli.NewInfoPrompt(console),
		Manager: cli.NewManagerPrompt(console, repo),
	}, repo, controller, tx)
	if err := appcontroller.RegisterCommand(controller, factory); err != nil {
		logger.Fatal().Err(err).Msg("failed to register add new employee command")
	}
	appcontroller.Subscribe(controller, presenter.EmployeeAdded)

	if err := cli.NewShell(console, view, presenter).Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("org chart shell stopped with error")
	}
}
