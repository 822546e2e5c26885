package contracts

import "context"

// Cache abstracts the TTL payload store so the gateway client works the same
// against the in-memory store and the Redis-backed one. Get treats expired
// entries as absent; Set overwrites whole entries and restarts their TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
