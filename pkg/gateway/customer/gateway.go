// Package customer defines the contract for the remote customer service.
package customer

import (
	"context"

	"github.com/finmesh/transaction-service/pkg/domain"
)

// Gateway is the remote customer-owning service. The gateway only performs
// the lookup; the KYC check against the result belongs to the caller.
type Gateway interface {
	// Fetch returns the customer or domain.ErrCustomerNotFound.
	Fetch(ctx context.Context, customerID string) (*domain.Customer, error)
}
