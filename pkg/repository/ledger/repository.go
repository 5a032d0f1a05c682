// Package ledger defines the data access contract for the append-only
// transaction ledger.
package ledger

import (
	"context"
	"time"

	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/shopspring/decimal"
)

// Create carries the caller-supplied fields of a new ledger row. ID and
// CreatedAt are assigned by the store.
type Create struct {
	AccountID    int64
	Amount       decimal.Decimal
	TxnType      domain.TxnType
	Counterparty string
}

// Repository is the append-only ledger store. Implementations must be safe
// for concurrent use.
type Repository interface {
	// Append inserts a new row and returns it with the store-assigned id and
	// timestamp. Rows are immutable once appended.
	Append(ctx context.Context, create Create) (*domain.Transaction, error)

	// Statement returns one page of the account's rows ordered by created_at
	// descending.
	Statement(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error)

	// History returns all of the account's rows ordered by created_at
	// descending.
	History(ctx context.Context, accountID int64) ([]domain.Transaction, error)

	// OutboundTotalOn sums the WITHDRAWAL and TRANSFER_OUT amounts for the
	// account on the given UTC calendar day.
	OutboundTotalOn(ctx context.Context, accountID int64, day time.Time) (decimal.Decimal, error)
}
