// Package initializer wires the concrete infrastructure into the transaction
// service: logger, database, event publisher, gateways and the orchestrator.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/finmesh/transaction-service/infra"
	infraeventbus "github.com/finmesh/transaction-service/infra/eventbus"
	"github.com/finmesh/transaction-service/infra/gateway"
	ledgerrepo "github.com/finmesh/transaction-service/infra/repository/ledger"
	"github.com/finmesh/transaction-service/pkg/config"
	"github.com/finmesh/transaction-service/pkg/limits"
	"github.com/finmesh/transaction-service/pkg/service/transaction"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deps holds everything the server needs at runtime, built once at process
// start and shut down explicitly.
type Deps struct {
	Logger    *slog.Logger
	DB        *gorm.DB
	Publisher *infraeventbus.RabbitPublisher
	Service   *transaction.Service
}

// Initialize builds all runtime dependencies from config. A broker that is
// unreachable at boot leaves the publisher in degraded no-op mode instead of
// failing the process; everything else is fatal.
func Initialize(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("connecting to ledger database: %w", err)
	}
	if err := db.AutoMigrate(&ledgerrepo.Transaction{}); err != nil {
		return nil, fmt.Errorf("migrating ledger schema: %w", err)
	}

	publisher := infraeventbus.NewRabbitPublisher(cfg.AMQP, logger)
	if err := publisher.Connect(); err != nil {
		logger.Error("rabbitmq connection failed, running without event publishing", "error", err)
	}

	ledger := ledgerrepo.New(db)
	limitPolicy := limits.NewDailyLimit(ledger, decimal.NewFromInt(cfg.Limits.DailyCeiling))

	svc := transaction.New(
		gateway.NewAccountClient(cfg.AccountService, logger),
		gateway.NewCustomerClient(cfg.CustomerService, logger),
		ledger,
		limitPolicy,
		publisher,
		logger,
	)

	return &Deps{
		Logger:    logger,
		DB:        db,
		Publisher: publisher,
		Service:   svc,
	}, nil
}

// Close releases the publisher channel and the database pool.
func (d *Deps) Close() {
	if err := d.Publisher.Close(); err != nil {
		d.Logger.Warn("closing event publisher", "error", err)
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			d.Logger.Warn("closing database pool", "error", err)
		}
	}
}
