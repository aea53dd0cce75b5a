package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps objects as flat files under Dir and serves them under
// BaseURL (the router mounts Dir as a static file group).
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create object dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Upload(key string, data []byte) (string, error) {
	key = cleanKey(key)
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	if err := os.WriteFile(filepath.Join(s.Dir, key), data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + key, nil
}

func (s *DiskStore) Fetch(key string) ([]byte, error) {
	key = cleanKey(key)
	if key == "" {
		return nil, fmt.Errorf("empty object key")
	}
	return os.ReadFile(filepath.Join(s.Dir, key))
}

// cleanKey strips any path component so a key can never escape Dir.
func cleanKey(key string) string {
	return filepath.Base(strings.TrimSpace(key))
}
