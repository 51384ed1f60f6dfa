package ports

import "context"

// Port: persistence for rendered plans, keyed by a generated plan ID.
type PlanStore interface {
	// Persist a rendered plan payload and return its new plan ID.
	SavePlan(ctx context.Context, fingerprint string, payload []byte) (string, error)
}
