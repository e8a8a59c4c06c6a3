package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkaroui/opsdeck/internal/codec"
	"github.com/nkaroui/opsdeck/internal/model"
)

const (
	maxBackups         = 20
	autoBackupInterval = 30 * time.Minute
)

// Backup is a point-in-time copy of the snapshot, newest first on disk.
type Backup struct {
	ID     string         `json:"id"`
	Time   int64          `json:"time"` // unix milliseconds
	Date   string         `json:"date"` // human-readable, for the restore list
	Reason string         `json:"reason"` // "manual" or "auto"
	Data   model.Snapshot `json:"data"`
}

// Backups lists stored backups, newest first.
func (s *Store) Backups() ([]Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadBackupsLocked()
}

func (s *Store) loadBackupsLocked() ([]Backup, error) {
	payload, err := s.kv.Get(keyBackups)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	plain, err := codec.Decode(string(payload))
	if err != nil {
		return nil, fmt.Errorf("decode backups: %w", err)
	}
	var backups []Backup
	if err := json.Unmarshal(plain, &backups); err != nil {
		return nil, fmt.Errorf("parse backups: %w", err)
	}
	return backups, nil
}

// SaveBackup stores a copy of the current snapshot. Automatic backups are
// throttled to one per half hour; manual backups always go through. The
// oldest entries fall off past the cap.
func (s *Store) SaveBackup(auto bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	backups, err := s.loadBackupsLocked()
	if err != nil {
		return false, err
	}
	now := s.now()
	if auto && len(backups) > 0 {
		if now.UnixMilli()-backups[0].Time < autoBackupInterval.Milliseconds() {
			return false, nil
		}
	}

	reason := "manual"
	if auto {
		reason = "auto"
	}
	backups = append([]Backup{{
		ID:     uuid.NewString(),
		Time:   now.UnixMilli(),
		Date:   now.Format("2006-01-02 15:04"),
		Reason: reason,
		Data:   s.snap.Clone(),
	}}, backups...)
	if len(backups) > maxBackups {
		backups = backups[:maxBackups]
	}

	plain, err := json.Marshal(backups)
	if err != nil {
		return false, err
	}
	if err := s.kv.Set(keyBackups, []byte(codec.Encode(plain))); err != nil {
		return false, err
	}
	return true, nil
}

// RestoreBackup replaces the live snapshot with a stored backup. The restore
// goes through the normal mutation path so it is stamped and pushed like any
// other local change.
func (s *Store) RestoreBackup(id string) error {
	backups, err := s.Backups()
	if err != nil {
		return err
	}
	for _, b := range backups {
		if b.ID == id {
			data := b.Data
			s.Mutate(func(snap *model.Snapshot) {
				creds := snap.Settings
				*snap = data.Clone()
				if !snap.Settings.HasCredentials() {
					snap.Settings.Token = creds.Token
					snap.Settings.BlobID = creds.BlobID
				}
			})
			return nil
		}
	}
	return fmt.Errorf("backup %s not found", id)
}
