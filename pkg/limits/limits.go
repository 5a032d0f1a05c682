// Package limits implements the rolling daily ceiling on outbound movements.
package limits

import (
	"context"
	"fmt"
	"time"

	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/shopspring/decimal"
)

// DefaultDailyCeiling is the cumulative outbound amount permitted per account
// per UTC calendar day unless overridden by configuration.
var DefaultDailyCeiling = decimal.NewFromInt(200_000)

// OutboundSummer is the slice of the ledger the policy needs.
type OutboundSummer interface {
	OutboundTotalOn(ctx context.Context, accountID int64, day time.Time) (decimal.Decimal, error)
}

// DailyLimit checks proposed debits against the ceiling using ledger data.
// The check is advisory: it reads committed rows only, so concurrent debits
// must be serialized by the caller for it to hold.
type DailyLimit struct {
	ledger  OutboundSummer
	ceiling decimal.Decimal
}

// NewDailyLimit creates the policy. A zero or negative ceiling falls back to
// DefaultDailyCeiling.
func NewDailyLimit(ledger OutboundSummer, ceiling decimal.Decimal) *DailyLimit {
	if ceiling.LessThanOrEqual(decimal.Zero) {
		ceiling = DefaultDailyCeiling
	}
	return &DailyLimit{ledger: ledger, ceiling: ceiling}
}

// Ceiling returns the configured ceiling.
func (l *DailyLimit) Ceiling() decimal.Decimal { return l.ceiling }

// Check returns domain.ErrDailyLimitExceeded when the account's outbound
// total for asOf's UTC day plus amount would exceed the ceiling.
func (l *DailyLimit) Check(ctx context.Context, accountID int64, amount decimal.Decimal, asOf time.Time) error {
	total, err := l.ledger.OutboundTotalOn(ctx, accountID, asOf.UTC())
	if err != nil {
		return fmt.Errorf("%w: summing outbound total: %v", domain.ErrInternal, err)
	}
	if total.Add(amount).GreaterThan(l.ceiling) {
		return fmt.Errorf("%w: %s spent today, ceiling %s", domain.ErrDailyLimitExceeded, total, l.ceiling)
	}
	return nil
}
