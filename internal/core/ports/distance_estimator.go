package ports

import "context"

// DistanceEstimator is the external distance/pricing collaborator. It is
// consulted exactly once, at order creation, and its answer is treated as
// an opaque input to the price calculator; the core never re-queries it
// after the price is fixed.
type DistanceEstimator interface {
	EstimateKm(ctx context.Context, fromAddress, toAddress string) (float64, error)
}
