// Package kv is the durable key-value store behind the admin session:
// access token, refresh token and the serialized admin profile live here.
package kv

import (
	"context"
)

// Repository is a byte-oriented key-value store. Get returns (nil, nil) for
// a missing key; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
