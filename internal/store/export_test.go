package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkaroui/opsdeck/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Mutate(func(snap *model.Snapshot) {
		snap.Settings.Token = "tok"
		snap.Settings.BlobID = "blob"
		snap.Tasks = []model.Task{{ID: 1, Text: "carry me"}}
	})

	path, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var exported model.Snapshot
	if err := json.Unmarshal(raw, &exported); err != nil {
		t.Fatalf("export is not plain JSON: %v", err)
	}
	if exported.Settings.Token != "" || exported.Settings.BlobID != "" {
		t.Fatal("credentials leaked into export")
	}

	// Import into a second store on another "machine".
	s2, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open second store: %v", err)
	}
	if err := s2.Import(path); err != nil {
		t.Fatalf("Import: %v", err)
	}
	snap := s2.Snapshot()
	if len(snap.Tasks) != 1 || snap.Tasks[0].Text != "carry me" {
		t.Fatalf("imported tasks = %+v", snap.Tasks)
	}
	if snap.UpdatedBy != s2.SessionID() {
		t.Fatal("import must be stamped as a local mutation")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Import(bad); err == nil {
		t.Fatal("imported garbage without error")
	}
}

func TestAirGapClearsVault(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Mutate(func(snap *model.Snapshot) {
		snap.Settings.Token = "tok"
		snap.Settings.BlobID = "blob"
	})
	if _, err := os.Stat(filepath.Join(dir, "deck_vault")); err != nil {
		t.Fatalf("vault missing before air gap: %v", err)
	}

	if err := s.AirGap(); err != nil {
		t.Fatalf("AirGap: %v", err)
	}
	snap := s.Snapshot()
	if snap.Settings.HasCredentials() {
		t.Fatal("credentials survive air gap")
	}
	if !snap.Settings.PrivateMode {
		t.Fatal("air gap must enable private mode")
	}
	if _, err := os.Stat(filepath.Join(dir, "deck_vault")); !os.IsNotExist(err) {
		t.Fatal("vault survives air gap")
	}

	// Reopening must not resurrect credentials.
	s2, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s2.Snapshot().Settings.HasCredentials() {
		t.Fatal("credentials recovered after air gap")
	}
}
