package gateway_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finmesh/transaction-service/infra/gateway"
	"github.com/finmesh/transaction-service/pkg/config"
	"github.com/finmesh/transaction-service/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountClient(url string) *gateway.AccountClient {
	return gateway.NewAccountClient(&config.AccountService{Url: url, Timeout: 2 * time.Second}, slog.Default())
}

func customerClient(url string) *gateway.CustomerClient {
	return gateway.NewCustomerClient(&config.CustomerService{Url: url, Timeout: 2 * time.Second}, slog.Default())
}

func TestAccountFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/accounts/1000", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"account_id":1000,"customer_id":"cust-1","balance":2500.75,"status":"ACTIVE"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	acct, err := accountClient(srv.URL).Fetch(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acct.AccountID)
	assert.Equal(t, "cust-1", acct.CustomerID)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("2500.75")))
	assert.Equal(t, domain.AccountActive, acct.Status)
}

func TestAccountFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"Account not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := accountClient(srv.URL).Fetch(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := accountClient(srv.URL).Fetch(context.Background(), 1000)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestUpdateBalance(t *testing.T) {
	var gotBody struct {
		Balance decimal.Decimal `json:"balance"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/accounts/1000", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := accountClient(srv.URL).UpdateBalance(context.Background(), 1000, decimal.NewFromInt(1500))
	require.NoError(t, err)
	assert.True(t, gotBody.Balance.Equal(decimal.NewFromInt(1500)))
}

func TestUpdateBalance_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := accountClient(srv.URL).UpdateBalance(context.Background(), 1000, decimal.NewFromInt(1500))
	require.ErrorIs(t, err, domain.ErrAccountServiceUnavailable)
}

func TestCustomerFetch_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/cust-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"customer_id":"cust-1","kyc_status":"VERIFIED"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	cust, err := customerClient(srv.URL).Fetch(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", cust.CustomerID)
	assert.Equal(t, domain.KYCVerified, cust.KYCStatus)
}

func TestCustomerFetch_FillsMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"kyc_status":"PENDING"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	cust, err := customerClient(srv.URL).Fetch(context.Background(), "cust-2")
	require.NoError(t, err)
	assert.Equal(t, "cust-2", cust.CustomerID)
	assert.Equal(t, domain.KYCPending, cust.KYCStatus)
}

func TestCustomerFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"success":false,"message":"Customer not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := customerClient(srv.URL).Fetch(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
