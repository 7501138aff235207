// Package kv is the string key/value substrate the application state is
// persisted to. Keys are few and values are JSON documents.
package kv

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("invalid key")

type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
		default:
			return ErrInvalidKey
		}
	}
	return nil
}
