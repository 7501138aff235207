package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

type FileStorage interface {
	// Upload writes a file and returns the cleaned path/key
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a file, ErrNotFound if absent
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file, absent files are not an error
	Delete(ctx context.Context, path string) error

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
