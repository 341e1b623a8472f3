package kv

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"careercraft-backend/internal/shared/util"
)

// FileStore writes one file per slot under a hashed owner directory.
type FileStore struct {
	baseDir string
}

// NewFile creates a store rooted at baseDir.
func NewFile(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (s *FileStore) Get(ctx context.Context, owner, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.path(owner, key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "read slot")
	}
	return string(data), nil
}

func (s *FileStore) Put(ctx context.Context, owner, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(owner, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	// Write then rename so readers never see a partial value.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return errors.Wrap(err, "write slot")
	}
	return errors.Wrap(os.Rename(tmp, path), "rename slot")
}

func (s *FileStore) Delete(ctx context.Context, owner, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(owner, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "remove slot")
	}
	return nil
}

func (s *FileStore) path(owner, key string) (string, error) {
	if err := validate(owner, key); err != nil {
		return "", err
	}
	name, err := util.SanitizeFileName(key)
	if err != nil {
		return "", errors.Wrap(err, "slot key")
	}
	return filepath.Join(s.baseDir, util.HashUserKey(owner), name+".json"), nil
}

var _ Store = (*FileStore)(nil)
