package store

import (
	"testing"
	"time"

	"github.com/nkaroui/opsdeck/internal/model"
)

func TestAutoBackupThrottle(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := &now
	s, err := Open(t.TempDir(), func() time.Time { return *clock })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	saved, err := s.SaveBackup(true)
	if err != nil || !saved {
		t.Fatalf("first auto backup: saved=%v err=%v", saved, err)
	}

	// Ten minutes later: still throttled for auto, fine for manual.
	now = now.Add(10 * time.Minute)
	if saved, _ := s.SaveBackup(true); saved {
		t.Fatal("auto backup not throttled within the interval")
	}
	if saved, err := s.SaveBackup(false); err != nil || !saved {
		t.Fatalf("manual backup blocked: saved=%v err=%v", saved, err)
	}

	// The manual entry restarts the clock: thirty-five minutes after it the
	// auto backup goes through again.
	now = now.Add(35 * time.Minute)
	if saved, _ := s.SaveBackup(true); !saved {
		t.Fatal("auto backup still throttled past the interval")
	}

	backups, err := s.Backups()
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("len(backups) = %d, want 3", len(backups))
	}
	if backups[0].Time <= backups[2].Time {
		t.Fatal("backups not ordered newest first")
	}
	if backups[0].Reason != "auto" || backups[1].Reason != "manual" {
		t.Fatalf("reasons = %s, %s", backups[0].Reason, backups[1].Reason)
	}
}

func TestBackupCap(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s, err := Open(t.TempDir(), func() time.Time { return now })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := 0; i < maxBackups+5; i++ {
		if _, err := s.SaveBackup(false); err != nil {
			t.Fatalf("SaveBackup #%d: %v", i, err)
		}
		now = now.Add(time.Minute)
	}
	backups, err := s.Backups()
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(backups) != maxBackups {
		t.Fatalf("len(backups) = %d, want %d", len(backups), maxBackups)
	}
}

func TestRestoreBackup(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Mutate(func(snap *model.Snapshot) {
		snap.Settings.Token = "tok"
		snap.Settings.BlobID = "blob"
		snap.Context = "before"
	})
	if _, err := s.SaveBackup(false); err != nil {
		t.Fatalf("SaveBackup: %v", err)
	}
	s.Mutate(func(snap *model.Snapshot) { snap.Context = "after" })

	backups, _ := s.Backups()
	if err := s.RestoreBackup(backups[0].ID); err != nil {
		t.Fatalf("RestoreBackup: %v", err)
	}
	snap := s.Snapshot()
	if snap.Context != "before" {
		t.Fatalf("Context = %q, want restored value", snap.Context)
	}
	if snap.UpdatedBy != s.SessionID() {
		t.Fatal("restore must be stamped as a local mutation")
	}
	if snap.Settings.Token != "tok" {
		t.Fatal("restore lost credentials")
	}

	if err := s.RestoreBackup("missing"); err == nil {
		t.Fatal("restoring an unknown backup should fail")
	}
}
