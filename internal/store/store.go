// Package store persists the application snapshot to a file-per-key data
// directory and owns the mutation path that stamps every local change for
// last-writer-wins conflict resolution.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nkaroui/opsdeck/internal/codec"
	"github.com/nkaroui/opsdeck/internal/model"
)

const (
	keyState   = "deck_state"
	keySecure  = "deck_secure" // legacy key, migrated on first open
	keyVault   = "deck_vault"
	keyBackups = "deck_backups"
)

// Store holds the live snapshot behind a mutex. Reads get deep copies;
// writes go through Mutate, which stamps authorship and persists before
// returning.
type Store struct {
	mu        sync.Mutex
	kv        *KV
	now       func() time.Time
	sessionID string
	snap      model.Snapshot
	onMutate  func(model.Snapshot)
}

// Open loads the snapshot from dir, migrating from the legacy key and
// recovering vaulted credentials as needed. A missing or corrupt snapshot
// falls back to the built-in initial state rather than failing.
func Open(dir string, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	kv, err := OpenKV(dir)
	if err != nil {
		return nil, err
	}
	s := &Store{
		kv:        kv,
		now:       now,
		sessionID: uuid.NewString(),
	}
	s.snap = s.load()
	s.recoverCredentials()
	return s, nil
}

func (s *Store) load() model.Snapshot {
	payload, err := s.kv.Get(keyState)
	if errors.Is(err, ErrNotFound) {
		// One-time migration from the legacy key.
		if payload, err = s.kv.Get(keySecure); err == nil {
			if setErr := s.kv.Set(keyState, payload); setErr == nil {
				if delErr := s.kv.Delete(keySecure); delErr != nil {
					log.Printf("store: drop legacy key: %v", delErr)
				}
			}
		}
	}
	if err != nil {
		return model.InitialSnapshot(s.now())
	}

	plain, err := codec.Decode(string(payload))
	if err != nil {
		log.Printf("store: decode snapshot: %v", err)
		return model.InitialSnapshot(s.now())
	}
	var snap model.Snapshot
	if err := json.Unmarshal(plain, &snap); err != nil {
		log.Printf("store: parse snapshot: %v", err)
		return model.InitialSnapshot(s.now())
	}
	if snap.WeeklyConfig == nil {
		snap.WeeklyConfig = model.InitialSnapshot(s.now()).WeeklyConfig
	}
	return snap
}

// recoverCredentials restores the token and blob id from the vault when the
// loaded snapshot lost them, which happens after restoring a backup or
// applying a scrubbed remote snapshot saved by a crashed session.
func (s *Store) recoverCredentials() {
	if s.snap.Settings.HasCredentials() {
		return
	}
	payload, err := s.kv.Get(keyVault)
	if err != nil {
		return
	}
	plain, err := codec.Decode(string(payload))
	if err != nil {
		return
	}
	var creds struct {
		Token  string `json:"token"`
		BlobID string `json:"blobId"`
	}
	if err := json.Unmarshal(plain, &creds); err != nil {
		return
	}
	if creds.Token != "" && creds.BlobID != "" {
		s.snap.Settings.Token = creds.Token
		s.snap.Settings.BlobID = creds.BlobID
		log.Print("store: recovered credentials from vault")
	}
}

// SessionID identifies this process in snapshot authorship stamps.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// OnMutate registers a hook invoked after every local mutation with the
// stamped snapshot. Remote applies do not trigger it.
func (s *Store) OnMutate(fn func(model.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMutate = fn
}

// Mutate applies fn to a copy of the snapshot, stamps it with this session's
// id and the current wall clock, persists it, and notifies the mutation hook.
func (s *Store) Mutate(fn func(*model.Snapshot)) model.Snapshot {
	s.mu.Lock()
	next := s.snap.Clone()
	fn(&next)
	next.UpdatedBy = s.sessionID
	stamp := s.now().UnixMilli()
	// The stamp doubles as a logical clock; two mutations within one
	// millisecond must still order.
	if stamp <= s.snap.LastSynced {
		stamp = s.snap.LastSynced + 1
	}
	next.LastSynced = stamp
	s.snap = next
	hook := s.onMutate
	s.persistLocked()
	s.mu.Unlock()

	if hook != nil {
		hook(next.Clone())
	}
	return next
}

// ApplyRemote replaces local state with a remote snapshot, keeping local
// credentials when the remote copy was scrubbed. The remote authorship stamp
// is preserved so the change does not echo back as a push.
func (s *Store) ApplyRemote(remote model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !remote.Settings.HasCredentials() {
		remote.Settings.Token = s.snap.Settings.Token
		remote.Settings.BlobID = s.snap.Settings.BlobID
	}
	s.snap = remote.Clone()
	s.persistLocked()
}

// Flush persists the current snapshot. Used at shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErrLocked()
}

func (s *Store) persistLocked() {
	if err := s.persistErrLocked(); err != nil {
		log.Printf("store: persist: %v", err)
	}
}

func (s *Store) persistErrLocked() error {
	plain, err := json.Marshal(s.snap)
	if err != nil {
		return err
	}
	if err := s.kv.Set(keyState, []byte(codec.Encode(plain))); err != nil {
		return err
	}
	if s.snap.Settings.HasCredentials() {
		vault, err := json.Marshal(map[string]string{
			"token":  s.snap.Settings.Token,
			"blobId": s.snap.Settings.BlobID,
		})
		if err == nil {
			if err := s.kv.Set(keyVault, []byte(codec.Encode(vault))); err != nil {
				log.Printf("store: persist vault: %v", err)
			}
		}
	}
	return nil
}
