package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/pkg/storage"
)

// File stores each key as <key>.json through a FileStorage.
type File struct {
	files storage.FileStorage
}

func NewFile(files storage.FileStorage) *File {
	return &File{files: files}
}

func (f *File) path(key string) string {
	return key + ".json"
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	rc, err := f.files.Download(ctx, f.path(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	return string(data), true, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := f.files.Upload(ctx, strings.NewReader(value), f.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (f *File) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := f.files.Delete(ctx, f.path(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
