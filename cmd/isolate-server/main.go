package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/api"
	"github.com/dd0wney/cluso-isolate/pkg/config"
	"github.com/dd0wney/cluso-isolate/pkg/health"
	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/metrics"
	"github.com/dd0wney/cluso-isolate/pkg/server"
	"github.com/dd0wney/cluso-isolate/pkg/snapshot"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config and ISOLATE_PORT)")
	preload := flag.String("load", "", "Snapshot to load into the store at startup (.json, .yaml, optionally .sz)")
	flag.Parse()

	if err := run(*configPath, *port, *preload); err != nil {
		fmt.Fprintf(os.Stderr, "isolate-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int, preload string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Log.Level))
	logging.SetDefaultLogger(logger)

	srv := api.NewServer(cfg, logger, metrics.DefaultRegistry())

	if preload != "" {
		n, err := snapshot.Load(preload)
		if err != nil {
			return err
		}
		if _, err := srv.Store().Put(n); err != nil {
			return err
		}
		logger.Info("snapshot loaded", logging.NetworkID(n.ID), logging.String("path", preload))
	}

	gs := server.NewGracefulServer(cfg.Server, srv.Router(), logger)
	srv.Health().RegisterReadinessCheck("shutdown", health.ShutdownCheck(gs.IsShuttingDown))
	gs.SetConfigReloadFunc(func() error {
		reloaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger.SetLevel(logging.ParseLevel(reloaded.Log.Level))
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.RunMetricsUpdater(ctx, 10*time.Second)
	go func() {
		<-gs.ShutdownChannel()
		cancel()
	}()

	logger.Info("isolate server starting",
		logging.Int("port", cfg.Server.Port),
		logging.Int("max_networks", cfg.Server.MaxNetworks),
		logging.String("version", api.Version),
	)
	return gs.Start()
}
