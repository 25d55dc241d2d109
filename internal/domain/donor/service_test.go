package donor

import (
	"context"
	"sort"
	"strings"
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

func (m *mockRepo) List(_ context.Context, status string, limit, offset int) ([]*AssessmentRecord, int, error) {
	var result []*AssessmentRecord
	for _, rec := range m.recs {
		if status == "" || rec.Status == status {
			result = append(result, rec)
		}
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

func (m *mockRepo) SearchByName(_ context.Context, name string, limit, offset int) ([]*AssessmentRecord, int, error) {
	var result []*AssessmentRecord
	for _, rec := range m.recs {
		if strings.Contains(strings.ToLower(rec.Name), strings.ToLower(name)) {
			result = append(result, rec)
		}
	}
	return result, len(result), nil
}

func TestCreateDefaultsToAvailable(t *testing.T) {
	svc := NewService(newMockRepo())
	rec, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-1", "name": "Donor One"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Status != StatusAvailable {
		t.Errorf("Status = %q, want %q", rec.Status, StatusAvailable)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateRequiresIdentity(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), map[string]any{"name": "No PHN"}); err == nil {
		t.Error("expected error for missing phn")
	}
	if _, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-2"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-2", "name": "X", "status": "bogus"}); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestUpdatePreservesWorkflowFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	rec, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-3", "name": "Donor Three"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), rec.ID, StatusEvaluating, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	updated, err := svc.Update(context.Background(), rec.ID, map[string]any{
		"phn": "PHN-3", "name": "Donor Three", "status": StatusAvailable,
		"comorbidities": map[string]any{"dm": true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusEvaluating {
		t.Errorf("questionnaire update must not change status, got %q", updated.Status)
	}
	if !updated.Comorbidities.DM {
		t.Error("updated questionnaire body lost")
	}
}

func TestAssignmentWorkflow(t *testing.T) {
	svc := NewService(newMockRepo())
	rec, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-4", "name": "Donor Four"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), rec.ID, StatusAssigned, "R-1"); err == nil {
		t.Error("available -> assigned should be rejected")
	}

	if _, err := svc.UpdateStatus(context.Background(), rec.ID, StatusEvaluating, ""); err != nil {
		t.Fatalf("available -> evaluating: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), rec.ID, StatusAssigned, ""); err == nil {
		t.Error("assigning without a recipient phn should fail")
	}

	assigned, err := svc.UpdateStatus(context.Background(), rec.ID, StatusAssigned, "R-1")
	if err != nil {
		t.Fatalf("evaluating -> assigned: %v", err)
	}
	if assigned.AssignedRecipient != "R-1" {
		t.Errorf("AssignedRecipient = %q, want R-1", assigned.AssignedRecipient)
	}

	released, err := svc.UpdateStatus(context.Background(), rec.ID, StatusAvailable, "")
	if err != nil {
		t.Fatalf("assigned -> available: %v", err)
	}
	if released.AssignedRecipient != "" {
		t.Errorf("release should clear AssignedRecipient, got %q", released.AssignedRecipient)
	}

	if _, err := svc.UpdateStatus(context.Background(), rec.ID, StatusRejected, ""); err != nil {
		t.Fatalf("available -> rejected: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), rec.ID, StatusAvailable, ""); err == nil {
		t.Error("rejected is terminal")
	}
}

func TestLatestByPHNPicksNewest(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	first, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-5", "name": "Old Entry"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.recs[first.ID].CreatedAt = time.Now().Add(-time.Hour)

	if _, err := svc.Create(context.Background(), map[string]any{"phn": "PHN-5", "name": "New Entry"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	latest, err := svc.LatestByPHN(context.Background(), "PHN-5")
	if err != nil {
		t.Fatalf("LatestByPHN: %v", err)
	}
	if latest.Name != "New Entry" {
		t.Errorf("latest = %q, want New Entry", latest.Name)
	}

	if _, err := svc.LatestByPHN(context.Background(), ""); err == nil {
		t.Error("empty phn should be rejected")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	a, _ := svc.Create(context.Background(), map[string]any{"phn": "P1", "name": "A"})
	if _, err := svc.Create(context.Background(), map[string]any{"phn": "P2", "name": "B"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), a.ID, StatusEvaluating, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	recs, total, err := svc.List(context.Background(), StatusEvaluating, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(recs) != 1 || recs[0].ID != a.ID {
		t.Errorf("status filter wrong: total=%d len=%d", total, len(recs))
	}

	if _, _, err := svc.List(context.Background(), "nope", 10, 0); err == nil {
		t.Error("invalid status filter should be rejected")
	}
}
