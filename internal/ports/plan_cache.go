package ports

import "context"

// Contract for caching rendered day plans keyed by a request fingerprint.
//
// Planning uses randomized centroid seeding, so two identical requests may
// produce different (equally valid) plans; the cache also pins one answer per
// fingerprint for its TTL. A miss returns ok=false, never an error.
type PlanCache interface {
	Get(ctx context.Context, fingerprint string) (payload []byte, ok bool, err error)
	Put(ctx context.Context, fingerprint string, payload []byte) error
}
