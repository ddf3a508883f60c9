package metadata

import (
	"context"
)

// Repository is a small key/value store for client-local state (session
// token, cached profile).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Tx runs fn against a transactional view of the repository, so a
	// group of writes lands or fails as one.
	Tx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
