package forms

import (
	"context"
	"encoding/json"
	"sync"
)

// Snapshot is the persisted shape of an in-progress wizard: the form values,
// any auxiliary row lists (e.g. a transfusion-history table), and the step
// cursor.
type Snapshot struct {
	Form           Values              `json:"form"`
	AuxiliaryLists map[string][]Values `json:"auxiliaryLists,omitempty"`
	Step           int                 `json:"step"`
}

// DraftStore persists one draft blob per form kind. Load returns (nil, nil)
// for an absent or unreadable draft: a corrupt blob is indistinguishable from
// no draft, and storage failures must never block form usage.
type DraftStore interface {
	Save(ctx context.Context, key string, snap *Snapshot) error
	Load(ctx context.Context, key string) (*Snapshot, error)
	Clear(ctx context.Context, key string) error
}

// DraftKey returns the fixed storage key for a form kind.
func DraftKey(kind Kind) string {
	return "draft:" + string(kind)
}

// MemoryDraftStore is the fallback store used in development and tests.
// Blobs are held serialized so loads never alias the saved snapshot.
type MemoryDraftStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{blobs: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Save(_ context.Context, key string, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = raw
	return nil
}

func (s *MemoryDraftStore) Load(_ context.Context, key string) (*Snapshot, error) {
	s.mu.Lock()
	raw, ok := s.blobs[key]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

func (s *MemoryDraftStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
