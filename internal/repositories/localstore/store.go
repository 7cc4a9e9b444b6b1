// Package localstore is the key-value store behind the local kinds,
// characters and grid libraries. Values are opaque JSON documents.
package localstore

import "context"

//go:generate mockgen -destination=mock/mock_store.go -package=localstoremock github.com/KirkDiggler/rpg-tabletop/internal/repositories/localstore Store

// Store persists documents under string keys
type Store interface {
	// Get returns errors.NotFound for missing keys
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored under key
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for missing keys
	Delete(ctx context.Context, key string) error
}
