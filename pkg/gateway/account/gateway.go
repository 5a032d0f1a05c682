// Package account defines the contract for the remote account service.
package account

import (
	"context"

	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/shopspring/decimal"
)

// Gateway is the remote account-owning service. Both calls are bounded by the
// client's timeout; retries, if any, belong to the transport layer.
type Gateway interface {
	// Fetch returns the account or domain.ErrAccountNotFound (remote 404 or
	// transport failure).
	Fetch(ctx context.Context, accountID int64) (*domain.Account, error)

	// UpdateBalance patches the account's balance to newBalance, or returns
	// domain.ErrAccountServiceUnavailable.
	UpdateBalance(ctx context.Context, accountID int64, newBalance decimal.Decimal) error
}
