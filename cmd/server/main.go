package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/finmesh/transaction-service/infra/initializer"
	"github.com/finmesh/transaction-service/pkg/config"
	"github.com/finmesh/transaction-service/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.Initialize(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	app := webapi.NewApp(deps.Service)

	// Shut the listener down on SIGINT/SIGTERM so in-flight settlements
	// finish before the publisher and pool close.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		deps.Logger.Info("shutting down", "signal", sig.String())
		if err := app.Shutdown(); err != nil {
			deps.Logger.Error("server shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)

	return app.Listen(addr)
}
