// Package gateway holds the HTTP clients for the account and customer
// services. Calls are bounded by the client timeout; there are no retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finmesh/transaction-service/pkg/config"
	"github.com/finmesh/transaction-service/pkg/domain"
	gw "github.com/finmesh/transaction-service/pkg/gateway/account"
	"github.com/shopspring/decimal"
)

// AccountClient talks to the account service over HTTP.
type AccountClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAccountClient creates an account gateway from config.
func NewAccountClient(cfg *config.AccountService, logger *slog.Logger) *AccountClient {
	return &AccountClient{
		baseURL:    cfg.Url,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("gateway", "account"),
	}
}

// Fetch implements account.Gateway. Any failure, transport or remote 404,
// surfaces as domain.ErrAccountNotFound.
func (c *AccountClient) Fetch(ctx context.Context, accountID int64) (*domain.Account, error) {
	url := fmt.Sprintf("%s/accounts/%d", c.baseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAccountNotFound, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("account fetch failed", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("%w: account %d: %v", domain.ErrAccountNotFound, accountID, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("account fetch returned non-200", "account_id", accountID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: account %d: status %d", domain.ErrAccountNotFound, accountID, resp.StatusCode)
	}

	var acct domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return nil, fmt.Errorf("%w: decoding account %d: %v", domain.ErrAccountNotFound, accountID, err)
	}
	return &acct, nil
}

// UpdateBalance implements account.Gateway.
func (c *AccountClient) UpdateBalance(ctx context.Context, accountID int64, newBalance decimal.Decimal) error {
	body, err := json.Marshal(map[string]decimal.Decimal{"balance": newBalance})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAccountServiceUnavailable, err)
	}

	url := fmt.Sprintf("%s/accounts/%d", c.baseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAccountServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("balance patch failed", "account_id", accountID, "error", err)
		return fmt.Errorf("%w: account %d: %v", domain.ErrAccountServiceUnavailable, accountID, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("balance patch returned non-2xx", "account_id", accountID, "status", resp.StatusCode)
		return fmt.Errorf("%w: account %d: status %d", domain.ErrAccountServiceUnavailable, accountID, resp.StatusCode)
	}
	return nil
}

var _ gw.Gateway = (*AccountClient)(nil)
