// Package autosave buffers note edits on the client and saves them in the background.
package autosave

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	models "nicenote/internal/domain/models/notebook"
)

// Defaults for Options
const (
	DefaultDebounce     = 1000 * time.Millisecond
	DefaultSavedDisplay = 2000 * time.Millisecond
	DefaultAttempts     = 3
)

// DefaultBackoff is the wait after each failed attempt, the last one included, so a
// flush that exhausts its attempts takes at least 1s+2s+4s. The last value repeats
// when Attempts exceeds len(Backoff).
var DefaultBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

var errCancelled = errors.New("save cancelled")

// Saver sends a partial update to the server
type Saver interface {
	SaveNote(ctx context.Context, id string, patch models.NotePatch) (*models.Note, error)
}

// CachePatcher receives optimistic edits and confirmed saves
type CachePatcher interface {
	ApplyPatch(id string, patch models.NotePatch, at time.Time)
	ApplySaved(note *models.Note)
}

// Notifier is told when a note could not be saved after every retry
type Notifier interface {
	SaveFailed(noteID string, err error)
}

// Options configures a Coordinator. Zero values take the defaults.
type Options struct {
	Debounce     time.Duration
	SavedDisplay time.Duration
	Attempts     int
	Backoff      []time.Duration

	Clock  Clock
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *slog.Logger

	Cache    CachePatcher // optional
	Notifier Notifier     // optional
}

func (o *Options) applyDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.SavedDisplay <= 0 {
		o.SavedDisplay = DefaultSavedDisplay
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if len(o.Backoff) == 0 {
		o.Backoff = DefaultBackoff
	}
	if o.Clock == nil {
		o.Clock = realClock{}
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// entry is the pending state of one note. It is identified by pointer: once removed
// from the map, an in-flight flush holding it can no longer change coordinator state.
type entry struct {
	patch  models.NotePatch
	timer  Timer
	saving bool
}

// Coordinator merges per-note edits, debounces them, and saves with retries.
// Each note is independent; at most one save per note is in flight.
type Coordinator struct {
	saver Saver
	opts  Options

	ctx    context.Context // ends on Close; aborts backoff waits
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	entries    map[string]*entry
	inflight   map[string]*entry // entry whose save is running, cancelled or not
	status     Status
	showSaved  bool
	savedTimer Timer
	observers  map[int]func(Status)
	nextObs    int
	closed     bool
}

// New creates a coordinator that saves through saver
func New(saver Saver, opts Options) *Coordinator {
	opts.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		saver:     saver,
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		entries:   make(map[string]*entry),
		inflight:  make(map[string]*entry),
		observers: make(map[int]func(Status)),
	}
}

// Status returns the current global status
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// OnStatus registers fn for status changes and returns a func that unregisters it.
// fn is called without internal locks held.
func (c *Coordinator) OnStatus(fn func(Status)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// ScheduleSave merges patch into the pending edits for noteID, applies it to the cache
// and restarts the debounce timer. Edits arriving while a save is in flight wait for
// it to finish.
func (c *Coordinator) ScheduleSave(noteID string, patch models.NotePatch) {
	if patch.IsEmpty() {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	e, ok := c.entries[noteID]
	if !ok {
		e = &entry{}
		c.entries[noteID] = e
	}
	e.patch = e.patch.Merge(patch)

	if c.opts.Cache != nil {
		c.opts.Cache.ApplyPatch(noteID, patch, c.opts.Clock.Now().UTC())
	}
	if c.inflight[noteID] == nil {
		c.arm(noteID, e)
	}
	c.unlockAndEmit()
}

// CancelPendingSave drops the pending edits and timer for noteID. A save already in
// flight runs to completion but is not retried and cannot restore the entry. Edits
// scheduled after the cancel wait for that save to resolve.
func (c *Coordinator) CancelPendingSave(noteID string) {
	c.mu.Lock()
	if e, ok := c.entries[noteID]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.entries, noteID)
	}
	c.unlockAndEmit()
}

// Close stops all timers, waits for in-flight saves, then sends every remaining
// patch once. Errors are logged. Later ScheduleSave calls are ignored.
func (c *Coordinator) Close(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for _, e := range c.entries {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
	}
	if c.savedTimer != nil {
		c.savedTimer.Stop()
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	c.mu.Lock()
	remaining := make(map[string]models.NotePatch, len(c.entries))
	for id, e := range c.entries {
		if !e.patch.IsEmpty() {
			remaining[id] = e.patch
		}
	}
	clear(c.entries)
	c.showSaved = false
	c.unlockAndEmit()

	for id, patch := range remaining {
		if _, err := c.saver.SaveNote(ctx, id, patch); err != nil {
			c.opts.Logger.Warn("final save failed", "note_id", id, "fields", patch.Fields(), "error", err)
		}
	}
}

// arm restarts the debounce timer for e. Caller holds mu.
func (c *Coordinator) arm(noteID string, e *entry) {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = c.opts.Clock.AfterFunc(c.opts.Debounce, func() {
		c.flush(noteID, e)
	})
}

func (c *Coordinator) flush(noteID string, e *entry) {
	c.mu.Lock()
	if c.closed || c.entries[noteID] != e || c.inflight[noteID] != nil {
		c.mu.Unlock()
		return
	}
	e.timer = nil
	if e.patch.IsEmpty() {
		delete(c.entries, noteID)
		c.unlockAndEmit()
		return
	}

	patch := e.patch
	e.patch = models.NotePatch{}
	e.saving = true
	c.inflight[noteID] = e
	c.wg.Add(1)
	defer c.wg.Done()
	c.unlockAndEmit()

	saved, err := c.save(noteID, e, patch)

	c.mu.Lock()
	e.saving = false
	delete(c.inflight, noteID)
	if live := c.entries[noteID]; live != e {
		// cancelled while in flight; edits made since then were held back
		if live != nil && !live.patch.IsEmpty() && !c.closed {
			c.arm(noteID, live)
		}
		c.unlockAndEmit()
		return
	}

	if err == nil {
		if c.opts.Cache != nil {
			c.opts.Cache.ApplySaved(saved)
		}
		if e.patch.IsEmpty() {
			delete(c.entries, noteID)
			c.startSavedDisplay()
		} else if !c.closed {
			c.arm(noteID, e)
		}
		c.unlockAndEmit()
		return
	}

	newer := !e.patch.IsEmpty()
	e.patch = patch.Merge(e.patch)
	if newer && !c.closed {
		c.arm(noteID, e)
	}
	closed := c.closed
	c.unlockAndEmit()

	if closed {
		return
	}
	c.opts.Logger.Error("note save failed", "note_id", noteID, "fields", patch.Fields(), "attempts", c.opts.Attempts, "error", err)
	if c.opts.Notifier != nil {
		c.opts.Notifier.SaveFailed(noteID, err)
	}
}

// save tries up to Attempts times, waiting Backoff after each failure. It stops early
// when the entry is cancelled or the coordinator closes.
func (c *Coordinator) save(noteID string, e *entry, patch models.NotePatch) (*models.Note, error) {
	var lastErr error
	for attempt := range c.opts.Attempts {
		saved, err := c.saver.SaveNote(context.WithoutCancel(c.ctx), noteID, patch)
		if err == nil {
			return saved, nil
		}
		lastErr = err
		c.opts.Logger.Warn("note save attempt failed", "note_id", noteID, "attempt", attempt+1, "error", err)

		delay := c.opts.Backoff[min(attempt, len(c.opts.Backoff)-1)]
		if err := c.opts.Sleep(c.ctx, delay); err != nil {
			return nil, errors.Join(lastErr, err)
		}
		if !c.active(noteID, e) {
			return nil, errCancelled
		}
	}
	return nil, lastErr
}

func (c *Coordinator) active(noteID string, e *entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.entries[noteID] == e
}

// startSavedDisplay shows "saved" for SavedDisplay. Caller holds mu.
func (c *Coordinator) startSavedDisplay() {
	if c.savedTimer != nil {
		c.savedTimer.Stop()
	}
	c.showSaved = true
	c.savedTimer = c.opts.Clock.AfterFunc(c.opts.SavedDisplay, func() {
		c.mu.Lock()
		c.showSaved = false
		c.unlockAndEmit()
	})
}

// unlockAndEmit recomputes the status, releases mu and notifies observers on change
func (c *Coordinator) unlockAndEmit() {
	next := c.computeStatus()
	changed := next != c.status
	c.status = next

	var observers []func(Status)
	if changed {
		for _, fn := range c.observers {
			observers = append(observers, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
}

// computeStatus picks the busiest state across notes. Caller holds mu.
func (c *Coordinator) computeStatus() Status {
	unsaved := false
	for _, e := range c.entries {
		if e.saving {
			return StatusSaving
		}
		if !e.patch.IsEmpty() {
			unsaved = true
		}
	}
	switch {
	case unsaved:
		return StatusUnsaved
	case c.showSaved:
		return StatusSaved
	default:
		return StatusIdle
	}
}

// Pending returns the ids of notes with edits not yet confirmed by the server
func (c *Coordinator) Pending() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
