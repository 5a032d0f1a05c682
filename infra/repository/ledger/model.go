package ledger

import (
	"time"

	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/shopspring/decimal"
)

// Transaction is the persisted ledger row. The table is append-only: no
// updates, no deletes, retained indefinitely for audit and limit sums.
type Transaction struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	AccountID    int64           `gorm:"not null;index:idx_transactions_account_created,priority:1"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TxnType      string          `gorm:"type:varchar(16);not null"`
	Counterparty string          `gorm:"type:varchar(255)"`
	CreatedAt    time.Time       `gorm:"not null;index:idx_transactions_account_created,priority:2"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Amount:       t.Amount,
		TxnType:      domain.TxnType(t.TxnType),
		Counterparty: t.Counterparty,
		CreatedAt:    t.CreatedAt,
	}
}
