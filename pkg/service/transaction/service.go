// Package transaction implements the orchestration core: it validates a
// money-movement request against the account and customer services, mutates
// the remote balance, appends the local ledger row, and emits the domain
// event, in that order.
//
// There is no cross-service transaction coordinator. The remote patch and the
// local append are a saga: when the append fails after a successful patch,
// the service issues a compensating reverse patch. Operations against the
// same account are serialized in-process so that the funds and daily-limit
// checks hold against the balance they read.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/finmesh/transaction-service/pkg/eventbus"
	"github.com/finmesh/transaction-service/pkg/gateway/account"
	"github.com/finmesh/transaction-service/pkg/gateway/customer"
	"github.com/finmesh/transaction-service/pkg/limits"
	"github.com/finmesh/transaction-service/pkg/repository/ledger"
	"github.com/shopspring/decimal"
)

// DefaultStatementLimit is the statement page size when the caller does not
// provide one.
const DefaultStatementLimit = 50

// Service orchestrates deposits, withdrawals and ledger reads. All
// dependencies are injected and must be safe for concurrent use.
type Service struct {
	accounts  account.Gateway
	customers customer.Gateway
	ledger    ledger.Repository
	limits    *limits.DailyLimit
	bus       eventbus.Publisher
	locks     *accountLocks
	logger    *slog.Logger
	now       func() time.Time
}

// New creates the orchestrator service.
func New(
	accounts account.Gateway,
	customers customer.Gateway,
	ledgerRepo ledger.Repository,
	limitPolicy *limits.DailyLimit,
	bus eventbus.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:  accounts,
		customers: customers,
		ledger:    ledgerRepo,
		limits:    limitPolicy,
		bus:       bus,
		locks:     newAccountLocks(),
		logger:    logger.With("service", "transaction"),
		now:       time.Now,
	}
}

// Deposit credits amount to the account and records a DEPOSIT ledger row.
func (s *Service) Deposit(
	ctx context.Context,
	accountID int64,
	amount decimal.Decimal,
	counterparty string,
) (*domain.Transaction, error) {
	unlock := s.locks.lock(accountID)
	defer unlock()

	acct, cust, err := s.admit(ctx, accountID, amount)
	if err != nil {
		return nil, err
	}

	newBalance := acct.Balance.Add(amount)
	return s.settle(ctx, acct, cust, amount, counterparty, newBalance, domain.TxnDeposit)
}

// Withdraw debits amount from the account after the funds and daily-limit
// checks and records a WITHDRAWAL ledger row.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID int64,
	amount decimal.Decimal,
	counterparty string,
) (*domain.Transaction, error) {
	unlock := s.locks.lock(accountID)
	defer unlock()

	acct, cust, err := s.admit(ctx, accountID, amount)
	if err != nil {
		return nil, err
	}

	if acct.Balance.LessThan(amount) {
		s.emitError(ctx, domain.ErrorEvent{AccountID: accountID, Error: domain.ErrInsufficientFunds.Code})
		return nil, fmt.Errorf("%w: balance %s, requested %s",
			domain.ErrInsufficientFunds, acct.Balance, amount)
	}

	if err := s.limits.Check(ctx, accountID, amount, s.now().UTC()); err != nil {
		if errors.Is(err, domain.ErrDailyLimitExceeded) {
			s.emitError(ctx, domain.ErrorEvent{AccountID: accountID, Error: domain.ErrDailyLimitExceeded.Code})
		}
		return nil, err
	}

	newBalance := acct.Balance.Sub(amount)
	return s.settle(ctx, acct, cust, amount, counterparty, newBalance, domain.TxnWithdrawal)
}

// Statement returns one page of the account's ledger, newest first. A
// non-positive limit falls back to DefaultStatementLimit.
func (s *Service) Statement(
	ctx context.Context,
	accountID int64,
	limit, offset int,
) ([]domain.Transaction, error) {
	if _, err := s.activeAccount(ctx, accountID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultStatementLimit
	}
	if offset < 0 {
		offset = 0
	}
	txns, err := s.ledger.Statement(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: reading statement: %v", domain.ErrInternal, err)
	}
	return txns, nil
}

// History returns the account's full ledger, newest first.
func (s *Service) History(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if _, err := s.activeAccount(ctx, accountID); err != nil {
		return nil, err
	}
	txns, err := s.ledger.History(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: reading history: %v", domain.ErrInternal, err)
	}
	return txns, nil
}

// admit runs the validation sequence shared by deposits and withdrawals:
// account exists, account active, customer exists and KYC-verified, amount
// positive. Every rejection is mirrored as a transaction.error event.
func (s *Service) admit(
	ctx context.Context,
	accountID int64,
	amount decimal.Decimal,
) (*domain.Account, *domain.Customer, error) {
	acct, err := s.activeAccount(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	cust, err := s.customers.Fetch(ctx, acct.CustomerID)
	if err != nil {
		s.emitError(ctx, domain.ErrorEvent{CustomerID: acct.CustomerID, Error: domain.ErrCustomerNotFound.Code})
		return nil, nil, err
	}
	if cust.KYCStatus != domain.KYCVerified {
		s.emitError(ctx, domain.ErrorEvent{CustomerID: cust.CustomerID, Error: domain.ErrKYCNotVerified.Code})
		return nil, nil, fmt.Errorf("%w: customer %s is %s",
			domain.ErrKYCNotVerified, cust.CustomerID, cust.KYCStatus)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		s.emitError(ctx, domain.ErrorEvent{AccountID: accountID, Error: domain.ErrInvalidAmount.Code})
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}

	return acct, cust, nil
}

// activeAccount fetches the account and rejects FROZEN and CLOSED ones.
func (s *Service) activeAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	acct, err := s.accounts.Fetch(ctx, accountID)
	if err != nil {
		s.emitError(ctx, domain.ErrorEvent{AccountID: accountID, Error: domain.ErrAccountNotFound.Code})
		return nil, err
	}
	if acct.Status != domain.AccountActive {
		s.emitError(ctx, domain.ErrorEvent{AccountID: accountID, Error: domain.ErrAccountInactive.Code})
		return nil, fmt.Errorf("%w: account %d is %s", domain.ErrAccountInactive, accountID, acct.Status)
	}
	return acct, nil
}

// settle performs the mutating tail of a deposit or withdrawal: patch the
// remote balance, append the ledger row, publish the settled event. The event
// is published strictly after the append commits.
func (s *Service) settle(
	ctx context.Context,
	acct *domain.Account,
	cust *domain.Customer,
	amount decimal.Decimal,
	counterparty string,
	newBalance decimal.Decimal,
	txnType domain.TxnType,
) (*domain.Transaction, error) {
	logger := s.logger.With("account_id", acct.AccountID, "txn_type", txnType, "amount", amount)

	if err := s.accounts.UpdateBalance(ctx, acct.AccountID, newBalance); err != nil {
		logger.Error("remote balance patch failed", "error", err)
		s.emitError(ctx, domain.ErrorEvent{AccountID: acct.AccountID, Error: domain.ErrAccountServiceUnavailable.Code})
		return nil, err
	}

	txn, err := s.ledger.Append(ctx, ledger.Create{
		AccountID:    acct.AccountID,
		Amount:       amount,
		TxnType:      txnType,
		Counterparty: counterparty,
	})
	if err != nil {
		// Compensate the already-applied remote patch. If the reverse patch
		// fails too, the remote and local views stay divergent; nothing else
		// reconciles them, so log loudly.
		logger.Error("ledger append failed after remote patch, compensating", "error", err)
		if cErr := s.accounts.UpdateBalance(ctx, acct.AccountID, acct.Balance); cErr != nil {
			logger.Error("compensation failed, remote balance diverged from ledger",
				"error", cErr, "patched_balance", newBalance, "original_balance", acct.Balance)
		}
		s.emitError(ctx, domain.ErrorEvent{AccountID: acct.AccountID, Error: domain.ErrInternal.Code})
		return nil, fmt.Errorf("%w: ledger append: %v", domain.ErrInternal, err)
	}

	event := domain.SettledEvent{
		Transaction: *txn,
		CustomerID:  cust.CustomerID,
		Balance:     newBalance,
	}
	eventType := domain.EventWithdraw
	if txnType == domain.TxnDeposit {
		eventType = domain.EventDeposit
		event.KYCStatus = cust.KYCStatus
	}
	if err := s.bus.Publish(ctx, eventType, event); err != nil {
		logger.Warn("failed to publish settled event", "type", eventType, "error", err)
	}

	logger.Info("transaction settled", "txn_id", txn.ID, "new_balance", newBalance)
	return txn, nil
}

// emitError publishes a transaction.error event; failures are logged and
// swallowed, never escalated.
func (s *Service) emitError(ctx context.Context, ev domain.ErrorEvent) {
	if err := s.bus.Publish(ctx, domain.EventError, ev); err != nil {
		s.logger.Warn("failed to publish error event", "code", ev.Error, "error", err)
	}
}
