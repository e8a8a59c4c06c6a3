// Package syncer mirrors the local snapshot to a remote blob using whole-state
// last-writer-wins replication. Local mutations are pushed after a short quiet
// period; the remote is polled on a fixed cadence and applied only when it is
// strictly newer and came from another session.
package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nkaroui/opsdeck/internal/codec"
	"github.com/nkaroui/opsdeck/internal/gist"
	"github.com/nkaroui/opsdeck/internal/model"
	"github.com/nkaroui/opsdeck/internal/store"
)

// Status is the sync state shown in the UI header.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSyncing
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSyncing:
		return "syncing"
	case StatusSuccess:
		return "synced"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

const (
	defaultPushWait  = 1500 * time.Millisecond
	defaultPullEvery = 5 * time.Second
	successDecay     = 2 * time.Second
)

// DialFunc builds a remote for the given credentials. Called again whenever
// the credentials change.
type DialFunc func(token, blobID string) gist.Remote

// Options tune the engine; zero values take the defaults.
type Options struct {
	Now       func() time.Time
	Typing    func() bool // suppresses remote applies while the user edits
	PushWait  time.Duration
	PullEvery time.Duration
}

// Engine owns the push debounce and the pull loop.
type Engine struct {
	st     *store.Store
	dial   DialFunc
	now    func() time.Time
	typing func() bool

	pushWait  time.Duration
	pullEvery time.Duration

	mu        sync.Mutex
	remote    gist.Remote
	remoteKey string
	timer     *time.Timer
	dirty     bool
	suspended bool
	status    Status
	statusAt  time.Time
	lastErr   error

	kick chan struct{}
}

func New(st *store.Store, dial DialFunc, opts Options) *Engine {
	e := &Engine{
		st:        st,
		dial:      dial,
		now:       opts.Now,
		typing:    opts.Typing,
		pushWait:  opts.PushWait,
		pullEvery: opts.PullEvery,
		kick:      make(chan struct{}, 1),
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.typing == nil {
		e.typing = func() bool { return false }
	}
	if e.pushWait == 0 {
		e.pushWait = defaultPushWait
	}
	if e.pullEvery == 0 {
		e.pullEvery = defaultPullEvery
	}
	st.OnMutate(e.onMutate)
	return e
}

// SetTyping installs the edit-in-progress probe after construction.
func (e *Engine) SetTyping(fn func() bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn != nil {
		e.typing = fn
	}
}

// Start runs the pull loop until ctx is cancelled. The first pull happens
// immediately so a fresh session converges without waiting a full interval.
func (e *Engine) Start(ctx context.Context) {
	go func() {
		e.Pull(ctx)
		ticker := time.NewTicker(e.pullEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.Pull(ctx)
			case <-e.kick:
				e.Pull(ctx)
			}
		}
	}()
}

// onMutate arms (or re-arms) the push debounce. Each mutation resets the
// quiet period; a burst of edits collapses into one push of the final state.
func (e *Engine) onMutate(snap model.Snapshot) {
	if !snap.Settings.HasCredentials() || snap.Settings.PrivateMode {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty = true
	e.setStatusLocked(StatusPending, nil)
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.pushWait, func() {
		if err := e.Push(context.Background()); err != nil {
			log.Printf("sync: push: %v", err)
		}
	})
}

// Push encodes the current snapshot, scrubs credentials, and writes it to the
// remote blob.
func (e *Engine) Push(ctx context.Context) error {
	snap := e.st.Snapshot()
	if !snap.Settings.HasCredentials() || snap.Settings.PrivateMode {
		return nil
	}
	remote := e.remoteFor(snap.Settings)

	e.mu.Lock()
	e.setStatusLocked(StatusSyncing, nil)
	e.mu.Unlock()

	// Credentials never leave the machine.
	snap.Settings.Token = ""
	snap.Settings.BlobID = ""
	plain, err := json.Marshal(snap)
	if err != nil {
		e.fail(err)
		return err
	}
	if err := remote.Update(ctx, codec.Encode(plain)); err != nil {
		e.fail(err)
		return fmt.Errorf("push snapshot: %w", err)
	}

	e.mu.Lock()
	e.dirty = false
	e.setStatusLocked(StatusSuccess, nil)
	e.mu.Unlock()
	return nil
}

// Pull fetches the remote snapshot and applies it when it is newer, authored
// elsewhere, and the user is not mid-edit.
func (e *Engine) Pull(ctx context.Context) error {
	e.mu.Lock()
	suspended := e.suspended
	e.mu.Unlock()
	if suspended {
		return nil
	}

	local := e.st.Snapshot()
	if !local.Settings.HasCredentials() || local.Settings.PrivateMode {
		return nil
	}
	remote := e.remoteFor(local.Settings)

	payload, err := remote.Fetch(ctx)
	if err != nil {
		e.fail(err)
		return fmt.Errorf("pull snapshot: %w", err)
	}
	plain, err := codec.Decode(payload)
	if err != nil {
		e.fail(err)
		return fmt.Errorf("pull snapshot: %w", err)
	}
	var incoming model.Snapshot
	if err := json.Unmarshal(plain, &incoming); err != nil {
		e.fail(err)
		return fmt.Errorf("pull snapshot: %w", err)
	}

	if incoming.UpdatedBy == e.st.SessionID() {
		return nil
	}
	if incoming.LastSynced <= local.LastSynced {
		return nil
	}
	if e.typing() {
		// Never yank state out from under an open editor; the next pull
		// gets it.
		return nil
	}
	e.st.ApplyRemote(incoming)

	e.mu.Lock()
	e.setStatusLocked(StatusSuccess, nil)
	e.mu.Unlock()
	return nil
}

// SetSuspended pauses pulls while the terminal is unfocused. Resuming kicks
// an immediate pull to catch up.
func (e *Engine) SetSuspended(suspended bool) {
	e.mu.Lock()
	was := e.suspended
	e.suspended = suspended
	e.mu.Unlock()
	if was && !suspended {
		select {
		case e.kick <- struct{}{}:
		default:
		}
	}
}

// Flush pushes any unsent local change. Called on shutdown with a short
// deadline; a failure is logged, not retried.
func (e *Engine) Flush(ctx context.Context) {
	e.mu.Lock()
	dirty := e.dirty
	if e.timer != nil {
		e.timer.Stop()
	}
	e.mu.Unlock()
	if !dirty {
		return
	}
	if err := e.Push(ctx); err != nil {
		log.Printf("sync: final flush: %v", err)
	}
}

// Status reports the current sync state. Success fades back to idle after a
// couple of seconds so the header indicator pulses rather than sticks.
func (e *Engine) Status() (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == StatusSuccess && e.now().Sub(e.statusAt) > successDecay {
		return StatusIdle, nil
	}
	return e.status, e.lastErr
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.setStatusLocked(StatusError, err)
	e.mu.Unlock()
}

func (e *Engine) setStatusLocked(s Status, err error) {
	e.status = s
	e.statusAt = e.now()
	e.lastErr = err
}

// remoteFor returns a remote for the given credentials, rebuilding the client
// when they change.
func (e *Engine) remoteFor(s model.Settings) gist.Remote {
	key := s.Token + "\x00" + s.BlobID
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.remote == nil || e.remoteKey != key {
		e.remote = e.dial(s.Token, s.BlobID)
		e.remoteKey = key
	}
	return e.remote
}
