package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finmesh/transaction-service/pkg/config"
	"github.com/finmesh/transaction-service/pkg/domain"
	gw "github.com/finmesh/transaction-service/pkg/gateway/customer"
)

// CustomerClient talks to the customer service over HTTP.
type CustomerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCustomerClient creates a customer gateway from config.
func NewCustomerClient(cfg *config.CustomerService, logger *slog.Logger) *CustomerClient {
	return &CustomerClient{
		baseURL:    cfg.Url,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("gateway", "customer"),
	}
}

// customerEnvelope is the customer service's response wrapper.
type customerEnvelope struct {
	Success bool            `json:"success"`
	Data    domain.Customer `json:"data"`
}

// Fetch implements customer.Gateway.
func (c *CustomerClient) Fetch(ctx context.Context, customerID string) (*domain.Customer, error) {
	url := fmt.Sprintf("%s/customers/%s", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCustomerNotFound, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("customer fetch failed", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf("%w: customer %s: %v", domain.ErrCustomerNotFound, customerID, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("customer fetch returned non-200", "customer_id", customerID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: customer %s: status %d", domain.ErrCustomerNotFound, customerID, resp.StatusCode)
	}

	var envelope customerEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding customer %s: %v", domain.ErrCustomerNotFound, customerID, err)
	}

	cust := envelope.Data
	if cust.CustomerID == "" {
		cust.CustomerID = customerID
	}
	return &cust, nil
}

var _ gw.Gateway = (*CustomerClient)(nil)
