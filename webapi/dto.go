package webapi

import "github.com/shopspring/decimal"

// MovementRequest is the body for deposit and withdraw calls.
type MovementRequest struct {
	AccountID    int64           `json:"account_id" validate:"required,gt=0"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Counterparty string          `json:"counterparty" validate:"omitempty,max=255"`
}
