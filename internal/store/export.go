package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nkaroui/opsdeck/internal/model"
)

// Export writes the snapshot as plain JSON next to the data files and
// returns the path. Credentials are scrubbed; an export is meant to move
// between machines, the vault is not.
func (s *Store) Export() (string, error) {
	snap := s.Snapshot()
	snap.Settings.Token = ""
	snap.Settings.BlobID = ""
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	name := fmt.Sprintf("deck_export_%s.json", s.now().Format("20060102-150405"))
	path := filepath.Join(s.kv.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Import replaces the snapshot with the contents of an export file. The
// replacement runs through the normal mutation path, so it is stamped and
// synced like any local edit; local credentials survive.
func (s *Store) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	s.Mutate(func(cur *model.Snapshot) {
		creds := cur.Settings
		*cur = snap.Clone()
		if !cur.Settings.HasCredentials() {
			cur.Settings.Token = creds.Token
			cur.Settings.BlobID = creds.BlobID
		}
	})
	return nil
}

// AirGap severs the remote: credentials are cleared from the snapshot and
// the vault, and private mode is switched on so nothing else leaves.
func (s *Store) AirGap() error {
	s.Mutate(func(snap *model.Snapshot) {
		snap.Settings.Token = ""
		snap.Settings.BlobID = ""
		snap.Settings.PrivateMode = true
	})
	return s.kv.Delete(keyVault)
}
