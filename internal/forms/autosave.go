package forms

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ktreg/ktreg/internal/platform/metrics"
)

// Meaningful reports whether a snapshot is worth persisting: at least one
// identifying field must be populated, so empty scratch state is never saved.
func Meaningful(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	for _, path := range []string{"phn", "name", "nicNo"} {
		if !Empty(snap.Form, path) {
			return true
		}
	}
	return false
}

// Autosaver debounces draft writes: rapid keystrokes collapse into a single
// store write after the quiet window. Store errors are logged and counted but
// never surface to the caller.
type Autosaver struct {
	store    DraftStore
	key      string
	kind     Kind
	debounce time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *Snapshot
}

func NewAutosaver(store DraftStore, kind Kind, debounce time.Duration, logger zerolog.Logger) *Autosaver {
	return &Autosaver{
		store:    store,
		key:      DraftKey(kind),
		kind:     kind,
		debounce: debounce,
		logger:   logger,
	}
}

// Notify records the latest snapshot and (re)arms the debounce timer. The
// write happens after the quiet window with whatever snapshot arrived last.
func (a *Autosaver) Notify(snap *Snapshot) {
	if !Meaningful(snap) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = snap
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.flush)
}

// Flush writes any pending snapshot immediately, cancelling the timer. Used
// on page-unload-equivalent events (session close).
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.flush()
}

// Stop cancels any pending write without persisting. Called after submit or
// reset, when the draft has already been cleared.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	snap := a.pending
	a.pending = nil
	a.mu.Unlock()
	if snap == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.store.Save(ctx, a.key, snap); err != nil {
		metrics.DraftSaves.WithLabelValues(string(a.kind), "error").Inc()
		a.logger.Warn().Err(err).Str("kind", string(a.kind)).Msg("draft save failed")
		return
	}
	metrics.DraftSaves.WithLabelValues(string(a.kind), "ok").Inc()
}
