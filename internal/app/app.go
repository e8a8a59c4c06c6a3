// Package app wires the stores, engines, and UI together.
package app

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/nkaroui/opsdeck/internal/gist"
	"github.com/nkaroui/opsdeck/internal/heartbeat"
	"github.com/nkaroui/opsdeck/internal/notify"
	"github.com/nkaroui/opsdeck/internal/prayer"
	"github.com/nkaroui/opsdeck/internal/prefs"
	"github.com/nkaroui/opsdeck/internal/store"
	"github.com/nkaroui/opsdeck/internal/syncer"
	"github.com/nkaroui/opsdeck/internal/ui"
)

const backupSweep = 5 * time.Minute

// Options configure the opsdeck application.
type Options struct {
	PrefsPath string // empty uses default ~/.config/opsdeck/prefs.toml
	DataDir   string // empty uses the prefs value
}

// Run boots the opsdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		if dataDir, err = userPrefs.ResolveDataDir(); err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
	}

	st, err := store.Open(dataDir, nil)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if _, err := st.SaveBackup(true); err != nil {
		log.Printf("app: startup backup: %v", err)
	}

	dial := func(token, blobID string) gist.Remote {
		return gist.NewClient(token, blobID, "")
	}

	var typing atomic.Bool
	sync := syncer.New(st, dial, syncer.Options{Typing: typing.Load})
	sync.Start(ctx)

	var notifier notify.Notifier = notify.System{}
	if !userPrefs.Notifications {
		notifier = notify.Nop{}
	}
	engine := heartbeat.New(st, notifier, time.Now())

	prayerClient := prayer.NewClient(userPrefs.PrayerCity, userPrefs.PrayerCountry, "")
	refreshPrayers := func(now time.Time) {
		fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		times, err := prayerClient.Fetch(fetchCtx, now)
		if err != nil {
			log.Printf("app: prayer times: %v", err)
			return
		}
		engine.SetPrayerTimes(times)
	}
	go refreshPrayers(time.Now())
	engine.OnDayChange(refreshPrayers)

	done := make(chan struct{})
	go engine.Run(done)
	go sweepBackups(ctx, st)

	uiErr := ui.Run(ctx, ui.Options{
		Store:  st,
		Sync:   sync,
		Engine: engine,
		Dial:   dial,
		Theme:  userPrefs.Theme,
		Typing: &typing,
	})
	close(done)

	// Best-effort final push and persist; the UI is already gone.
	flushCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sync.Flush(flushCtx)
	if err := st.Flush(); err != nil {
		log.Printf("app: flush store: %v", err)
	}
	return uiErr
}

// sweepBackups periodically offers the store an automatic backup; the store's
// own throttle decides whether one is due.
func sweepBackups(ctx context.Context, st *store.Store) {
	ticker := time.NewTicker(backupSweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := st.SaveBackup(true); err != nil {
				log.Printf("app: auto backup: %v", err)
			}
		}
	}
}
