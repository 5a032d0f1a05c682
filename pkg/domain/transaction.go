// Package domain holds the core types shared across the transaction service:
// the ledger transaction, the remote account and customer views, the business
// error taxonomy, and the domain event payloads.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies a ledger entry.
type TxnType string

const (
	TxnDeposit     TxnType = "DEPOSIT"
	TxnWithdrawal  TxnType = "WITHDRAWAL"
	TxnTransferIn  TxnType = "TRANSFER_IN"
	TxnTransferOut TxnType = "TRANSFER_OUT"
)

// Outbound reports whether the transaction type moves money out of the
// account and therefore counts toward the daily ceiling.
func (t TxnType) Outbound() bool {
	return t == TxnWithdrawal || t == TxnTransferOut
}

// Transaction is one immutable ledger row. ID and CreatedAt are assigned by
// the store on append; rows are never updated or deleted afterwards.
type Transaction struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	Amount       decimal.Decimal `json:"amount"`
	TxnType      TxnType         `json:"txn_type"`
	Counterparty string          `json:"counterparty,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AccountStatus is the activity state of a remote account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// Account is the account service's view of an account. It is fetched per
// request and never cached locally.
type Account struct {
	AccountID  int64           `json:"account_id"`
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
	Status     AccountStatus   `json:"status"`
}

// KYCStatus is the customer verification state gating transactions.
type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCVerified KYCStatus = "VERIFIED"
	KYCRejected KYCStatus = "REJECTED"
)

// Customer is the customer service's view of a customer, read-only here.
type Customer struct {
	CustomerID string    `json:"customer_id"`
	KYCStatus  KYCStatus `json:"kyc_status"`
}
