package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types published to the transaction_events queue.
const (
	EventDeposit  = "transaction.deposit"
	EventWithdraw = "transaction.withdraw"
	EventError    = "transaction.error"
)

// Event is the envelope every message on the queue is wrapped in. Delivery is
// at-least-once; consumers deduplicate on ID.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// SettledEvent is the payload for transaction.deposit and
// transaction.withdraw: the ledger row plus the customer context and the
// balance after the remote patch. KYCStatus is only set on deposits.
type SettledEvent struct {
	Transaction
	CustomerID string          `json:"customer_id"`
	KYCStatus  KYCStatus       `json:"kyc_status,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
}

// ErrorEvent is the payload for transaction.error. Either AccountID or
// CustomerID identifies the failing scope.
type ErrorEvent struct {
	AccountID  int64  `json:"account_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Error      string `json:"error"`
}
