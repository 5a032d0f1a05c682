package webapi

import (
	"context"

	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Orchestrator is the slice of the transaction service the HTTP layer needs.
type Orchestrator interface {
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal, counterparty string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal, counterparty string) (*domain.Transaction, error)
	Statement(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error)
	History(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// TransactionRoutes registers the money-movement and ledger-read endpoints.
//
//   - POST /transactions/deposit              : settle a deposit
//   - POST /transactions/withdraw             : settle a withdrawal
//   - GET  /accounts/:account_id/statement    : paginated ledger page
//   - GET  /accounts/:account_id/transactions : full ledger history
func TransactionRoutes(app *fiber.App, svc Orchestrator) {
	app.Post("/transactions/deposit", Deposit(svc))
	app.Post("/transactions/withdraw", Withdraw(svc))
	app.Get("/accounts/:account_id/statement", Statement(svc))
	app.Get("/accounts/:account_id/transactions", History(svc))
}

// Deposit returns the handler settling deposit requests.
func Deposit(svc Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[MovementRequest](c)
		if input == nil {
			return err
		}
		txn, err := svc.Deposit(c.UserContext(), input.AccountID, input.Amount, input.Counterparty)
		if err != nil {
			return BusinessErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", txn)
	}
}

// Withdraw returns the handler settling withdrawal requests.
func Withdraw(svc Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[MovementRequest](c)
		if input == nil {
			return err
		}
		txn, err := svc.Withdraw(c.UserContext(), input.AccountID, input.Amount, input.Counterparty)
		if err != nil {
			return BusinessErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", txn)
	}
}

// Statement returns the handler for paginated ledger reads.
// Query params: limit (default 50), offset (default 0).
func Statement(svc Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := c.ParamsInt("account_id")
		if err != nil || accountID <= 0 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", c.Params("account_id"))
		}
		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)

		txns, err := svc.Statement(c.UserContext(), int64(accountID), limit, offset)
		if err != nil {
			return BusinessErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Statement", txns)
	}
}

// History returns the handler for full ledger reads.
func History(svc Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := c.ParamsInt("account_id")
		if err != nil || accountID <= 0 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", c.Params("account_id"))
		}
		txns, err := svc.History(c.UserContext(), int64(accountID))
		if err != nil {
			return BusinessErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction history", txns)
	}
}
