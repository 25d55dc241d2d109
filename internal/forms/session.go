package forms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ktreg/ktreg/internal/platform/metrics"
)

// ValidationError carries the field-error map of a rejected submission.
type ValidationError struct {
	Step   int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d has %d invalid field(s)", e.Step, len(e.Fields))
}

// Finalizer converts a completed wizard's values into its canonical record
// and hands it to the persistence collaborator. Registered per form kind at
// wiring time.
type Finalizer func(ctx context.Context, values Values, aux map[string][]Values) (any, error)

// KindSpec binds a form kind to its canonical empty shape and its submission
// handler.
type KindSpec struct {
	Defaults func() Values
	Finalize Finalizer
}

// Engine owns the live wizard sessions. Each form kind has at most one active
// session (single-writer, mirroring the one-draft-slot-per-kind policy).
type Engine struct {
	store    DraftStore
	debounce time.Duration
	logger   zerolog.Logger

	mu     sync.Mutex
	specs  map[Kind]KindSpec
	byKind map[Kind]*Session
	byID   map[uuid.UUID]*Session
}

func NewEngine(store DraftStore, debounce time.Duration, logger zerolog.Logger) *Engine {
	return &Engine{
		store:    store,
		debounce: debounce,
		logger:   logger,
		specs:    make(map[Kind]KindSpec),
		byKind:   make(map[Kind]*Session),
		byID:     make(map[uuid.UUID]*Session),
	}
}

// Register wires a form kind's defaults and finalizer. Must be called before
// Open for that kind.
func (e *Engine) Register(kind Kind, spec KindSpec) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.specs[kind] = spec
}

// Open returns the active session for a form kind, creating one if needed.
// On creation any persisted draft fully replaces the fresh form state; the
// second return reports whether a draft was restored. Draft-store failures
// degrade to "no draft".
func (e *Engine) Open(ctx context.Context, kind Kind) (*Session, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.byKind[kind]; ok {
		return s, false, nil
	}
	spec, ok := e.specs[kind]
	if !ok {
		return nil, false, fmt.Errorf("unknown form kind %q", kind)
	}

	s := &Session{
		ID:       uuid.New(),
		Kind:     kind,
		slice:    string(kind) + "Form",
		engine:   e,
		finalize: spec.Finalize,
		defaults: spec.Defaults,
		nav:      NewNavigator(kind),
		saver:    NewAutosaver(e.store, kind, e.debounce, e.logger),
		aux:      make(map[string][]Values),
	}
	s.state = State{s.slice: spec.Defaults()}

	restored := false
	if snap, err := e.store.Load(ctx, DraftKey(kind)); err != nil {
		e.logger.Warn().Err(err).Str("kind", string(kind)).Msg("draft load failed, starting fresh")
	} else if snap != nil {
		s.state = State{s.slice: snap.Form}
		if snap.AuxiliaryLists != nil {
			s.aux = snap.AuxiliaryLists
		}
		s.nav.Restore(snap.Step)
		restored = true
	}

	e.byKind[kind] = s
	e.byID[s.ID] = s
	metrics.ActiveFormSessions.Inc()
	return s, restored, nil
}

// Get returns a session by id.
func (e *Engine) Get(id uuid.UUID) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.byID[id]
	return s, ok
}

func (e *Engine) remove(s *Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.byKind[s.Kind] == s {
		delete(e.byKind, s.Kind)
	}
	delete(e.byID, s.ID)
	metrics.ActiveFormSessions.Dec()
}

// Session is one live wizard: form state, step cursor, auxiliary row lists,
// and the debounced draft saver. All methods are safe for concurrent use,
// though in practice each form has a single writer.
type Session struct {
	ID   uuid.UUID
	Kind Kind

	engine   *Engine
	slice    string
	finalize Finalizer
	defaults func() Values
	saver    *Autosaver

	mu    sync.Mutex
	state State
	aux   map[string][]Values
	nav   *Navigator
	phn   string
}

// Values returns the session's current form values.
func (s *Session) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state[s.slice]
}

// Step returns the current declared step index.
func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// StepName returns the name of the current step.
func (s *Session) StepName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.StepName()
}

// PHN returns the patient the session is bound to, if any.
func (s *Session) PHN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phn
}

// UpdateField applies one field edit and schedules an autosave. A path whose
// spine does not traverse existing objects is rejected with ErrInvalidPath
// and leaves the state untouched.
func (s *Session) UpdateField(path string, value any) error {
	snap, err := s.applyField(path, value)
	if err != nil {
		return err
	}
	s.saver.Notify(snap)
	return nil
}

// applyField holds the lock via defer so a reducer panic can never leave the
// session wedged.
func (s *Session) applyField(path string, value any) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := CheckPath(s.state[s.slice], path); err != nil {
		return nil, err
	}
	s.state = Reduce(s.state, UpdateField{Form: s.slice, Path: path, Value: value})
	return s.snapshotLocked(), nil
}

// SetFormData bulk-merges data onto the form's top level and schedules an
// autosave.
func (s *Session) SetFormData(data Values) {
	s.mu.Lock()
	s.state = Reduce(s.state, SetFormData{Form: s.slice, Data: data})
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.saver.Notify(snap)
}

// SetSearchKey records the PHN the session is currently working against.
// Subsequent demographic payloads are matched against it.
func (s *Session) SetSearchKey(phn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phn = phn
}

// BindPatient applies a fetched demographic payload only when it still
// matches the session's current search key. A payload for a superseded PHN
// is discarded (guard check, not cancellation) and false is returned.
func (s *Session) BindPatient(phn string, demographics Values) bool {
	s.mu.Lock()
	if s.phn != phn {
		s.mu.Unlock()
		return false
	}
	s.state = Reduce(s.state, SetFormData{Form: s.slice, Data: demographics})
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.saver.Notify(snap)
	return true
}

// AddAuxRow appends a row to a named auxiliary list (e.g. the transfusion-
// history table) and schedules an autosave.
func (s *Session) AddAuxRow(list string, row Values) {
	s.mu.Lock()
	s.aux[list] = append(s.aux[list], row)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.saver.Notify(snap)
}

// RemoveAuxRow deletes a row by index; out-of-range indices are ignored.
func (s *Session) RemoveAuxRow(list string, idx int) {
	s.mu.Lock()
	rows := s.aux[list]
	if idx >= 0 && idx < len(rows) {
		s.aux[list] = append(rows[:idx:idx], rows[idx+1:]...)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.saver.Notify(snap)
}

// AuxRows returns a named auxiliary list.
func (s *Session) AuxRows(list string) []Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aux[list]
}

// Next advances one step; a non-empty return holds the blocking field errors
// and means the cursor did not move.
func (s *Session) Next() map[string]string {
	s.mu.Lock()
	errs := s.nav.Next(s.state[s.slice])
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if len(errs) == 0 {
		s.saver.Notify(snap)
	}
	return errs
}

// Previous retreats one step unconditionally.
func (s *Session) Previous() {
	s.mu.Lock()
	s.nav.Previous(s.state[s.slice])
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.saver.Notify(snap)
}

// JumpTo moves directly to a previously visited step, or one step forward
// after validation.
func (s *Session) JumpTo(i int) (map[string]string, error) {
	s.mu.Lock()
	errs, err := s.nav.JumpTo(i, s.state[s.slice])
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if err == nil && len(errs) == 0 {
		s.saver.Notify(snap)
	}
	return errs, err
}

func (s *Session) snapshotLocked() *Snapshot {
	return &Snapshot{
		Form:           s.state[s.slice],
		AuxiliaryLists: s.aux,
		Step:           s.nav.Current(),
	}
}

// Snapshot returns the draft-shaped view of the session.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Submit validates every visible step, runs the kind's finalizer, clears the
// draft, and retires the session. The returned value is the canonical record
// produced by the finalizer.
func (s *Session) Submit(ctx context.Context) (any, error) {
	s.mu.Lock()
	values := s.state[s.slice]
	steps := Steps(s.Kind)
	for i := range steps {
		if steps[i].Visible != nil && !steps[i].Visible(values) {
			continue
		}
		if errs := Validate(s.Kind, i, values); len(errs) > 0 {
			s.mu.Unlock()
			return nil, &ValidationError{Step: i, Fields: errs}
		}
	}
	aux := s.aux
	s.mu.Unlock()

	record, err := s.finalize(ctx, values, aux)
	if err != nil {
		return nil, err
	}

	s.saver.Stop()
	if err := s.engine.store.Clear(ctx, DraftKey(s.Kind)); err != nil {
		s.engine.logger.Warn().Err(err).Str("kind", string(s.Kind)).Msg("draft clear failed")
	}
	s.engine.remove(s)
	metrics.FormSubmissions.WithLabelValues(string(s.Kind)).Inc()
	return record, nil
}

// Reset discards the session and its draft. The next Open starts fresh.
func (s *Session) Reset(ctx context.Context) {
	s.saver.Stop()
	if err := s.engine.store.Clear(ctx, DraftKey(s.Kind)); err != nil {
		s.engine.logger.Warn().Err(err).Str("kind", string(s.Kind)).Msg("draft clear failed")
	}
	s.engine.remove(s)
}

// Flush forces any pending autosave to disk immediately.
func (s *Session) Flush() {
	s.saver.Flush()
}
