// Package ledger is the gorm-backed implementation of the append-only
// transaction ledger.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/finmesh/transaction-service/pkg/domain"
	repo "github.com/finmesh/transaction-service/pkg/repository/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a ledger repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Append implements ledger.Repository.
func (r *repository) Append(ctx context.Context, create repo.Create) (*domain.Transaction, error) {
	row := Transaction{
		AccountID:    create.AccountID,
		Amount:       create.Amount,
		TxnType:      string(create.TxnType),
		Counterparty: create.Counterparty,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("appending ledger row: %w", err)
	}
	txn := row.toDomain()
	return &txn, nil
}

// Statement implements ledger.Repository.
func (r *repository) Statement(
	ctx context.Context,
	accountID int64,
	limit, offset int,
) ([]domain.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

// History implements ledger.Repository.
func (r *repository) History(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

// OutboundTotalOn implements ledger.Repository. The day window is the UTC
// calendar day containing the given time.
func (r *repository) OutboundTotalOn(
	ctx context.Context,
	accountID int64,
	day time.Time,
) (decimal.Decimal, error) {
	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ?", accountID).
		Where("txn_type IN ?", []string{string(domain.TxnWithdrawal), string(domain.TxnTransferOut)}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func mapRows(rows []Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
