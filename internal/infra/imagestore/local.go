package imagestore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

// LocalStorage writes uploaded images under a base directory. Keys are
// slash-separated relative paths and double as the publicly served URL path.
type LocalStorage struct {
	root   string
	logger *slog.Logger
}

// NewLocalStorage constructs the storage adapter.
func NewLocalStorage(root string, logger *slog.Logger) *LocalStorage {
	if root == "" {
		root = "."
	}
	return &LocalStorage{root: root, logger: logger.With("component", "imagestore.local")}
}

// Put writes the blob to disk.
func (s *LocalStorage) Put(_ context.Context, key string, data []byte, mimeType string) (closet.StoredImage, error) {
	path, err := s.resolve(key)
	if err != nil {
		return closet.StoredImage{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return closet.StoredImage{}, fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return closet.StoredImage{}, fmt.Errorf("write image: %w", err)
	}
	hash := md5.Sum(data)
	return closet.StoredImage{
		Key:      key,
		Size:     int64(len(data)),
		MimeType: mimeType,
		ETag:     hex.EncodeToString(hash[:]),
	}, nil
}

// Get opens the stored blob for reading.
func (s *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes the blob.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

var _ closet.ImageStore = (*LocalStorage)(nil)

func (s *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
