package recipient

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	recs map[uuid.UUID]*AssessmentRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{recs: make(map[uuid.UUID]*AssessmentRecord)}
}

func (m *mockRepo) Create(_ context.Context, rec *AssessmentRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	m.recs[rec.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, rec *AssessmentRecord) error {
	if _, ok := m.recs[rec.ID]; !ok {
		return ErrNotFound
	}
	rec.UpdatedAt = time.Now()
	cp := *rec
	m.recs[rec.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.recs[id]; !ok {
		return ErrNotFound
	}
	delete(m.recs, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*AssessmentRecord, int, error) {
	var result []*AssessmentRecord
	for _, rec := range m.recs {
		result = append(result, rec)
	}
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockRepo) LatestByPHN(_ context.Context, phn string) (*AssessmentRecord, error) {
	var matches []*AssessmentRecord
	for _, rec := range m.recs {
		if rec.PHN == phn {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	cp := *matches[0]
	return &cp, nil
}

func TestCreateRequiresIdentity(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), map[string]any{"name": "No PHN"}); err == nil {
		t.Error("expected error for missing phn")
	}
	rec, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-1", "name": "R. Silva"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestUpdateRequiresExistingRecord(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Update(context.Background(), uuid.New(), map[string]any{"phn": "P", "name": "N"}); err == nil {
		t.Error("update of unknown id should fail")
	}

	rec, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-2", "name": "Before"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := svc.Update(context.Background(), rec.ID, map[string]any{
		"phn": "PHN-2", "name": "After",
		"rrt": map[string]any{"hemodialysis": true, "startDate": "2024-02-01"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != rec.ID {
		t.Error("update must keep the record id")
	}
	if updated.Name != "After" || !updated.RRT.Hemodialysis || updated.RRT.StartDate != "2024-02-01" {
		t.Errorf("update lost fields: %+v", updated.RRT)
	}
}

func TestNormalizeExtendedComorbidities(t *testing.T) {
	rec := Normalize(map[string]any{
		"phn": "PHN-3", "name": "X",
		"comorbidities": map[string]any{
			"dm":       true,
			"dmDetail": map[string]any{"retinopathy": true, "duration": "8y"},
			"cld":      map[string]any{"present": true, "stage": "Child-Pugh B"},
		},
	})
	if !rec.Comorbidities.DM || !rec.Comorbidities.DMDetail.Retinopathy {
		t.Errorf("comorbidity detail lost: %+v", rec.Comorbidities)
	}
	if rec.Comorbidities.DMDetail.Duration != "8y" {
		t.Errorf("Duration = %q", rec.Comorbidities.DMDetail.Duration)
	}
	if !rec.Comorbidities.CLD.Present || rec.Comorbidities.CLD.Stage != "Child-Pugh B" {
		t.Errorf("CLD staging lost: %+v", rec.Comorbidities.CLD)
	}

	// Shared flags and detail blocks serialize side by side.
	raw, err := json.Marshal(rec.Comorbidities)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"dl", "dm", "htn", "ihd", "psychiatricIllness", "dmDetail", "ihdDetail", "cld"} {
		if _, ok := m[key]; !ok {
			t.Errorf("serialized comorbidities missing %q", key)
		}
	}
}

func TestLatestByPHN(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	old, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-4", "name": "Old"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.recs[old.ID].CreatedAt = time.Now().Add(-time.Hour)
	if _, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-4", "name": "New"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	latest, err := svc.LatestByPHN(context.Background(), "PHN-4")
	if err != nil {
		t.Fatalf("LatestByPHN: %v", err)
	}
	if latest.Name != "New" {
		t.Errorf("latest = %q, want New", latest.Name)
	}
}
