package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by KV.Get for keys that were never set.
var ErrNotFound = errors.New("store: key not found")

// KV is a file-per-key store rooted at a directory. Writes go through a
// temp file and rename so a crash never leaves a half-written value.
type KV struct {
	dir string
}

func OpenKV(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &KV{dir: dir}, nil
}

func (kv *KV) path(key string) string {
	return filepath.Join(kv.dir, key)
}

func (kv *KV) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(kv.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (kv *KV) Set(key string, data []byte) error {
	tmp := kv.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, kv.path(key)); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

func (kv *KV) Delete(key string) error {
	err := os.Remove(kv.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
