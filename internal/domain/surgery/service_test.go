package surgery

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	recs map[uuid.UUID]*Record
}

func newMockRepo() *mockRepo {
	return &mockRepo{recs: make(map[uuid.UUID]*Record)}
}

func (m *mockRepo) Create(_ context.Context, rec *Record) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	m.recs[rec.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, rec *Record) error {
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

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Record, int, error) {
	var result []*Record
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

func (m *mockRepo) ListByPHN(_ context.Context, phn string) ([]*Record, error) {
	var result []*Record
	for _, rec := range m.recs {
		if rec.Patient.PHN == phn {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockRepo) LatestByPHN(_ context.Context, phn string) (*Record, error) {
	recs, _ := m.ListByPHN(context.Background(), phn)
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	cp := *recs[0]
	return &cp, nil
}

func (m *mockRepo) ExistsForPHN(_ context.Context, phn string) (bool, error) {
	for _, rec := range m.recs {
		if rec.Patient.PHN == phn {
			return true, nil
		}
	}
	return false, nil
}

func validSubmission() map[string]any {
	return map[string]any{
		"patient": map[string]any{"phn": "PHN-1", "name": "A. Fernando"},
		"transplant": map[string]any{
			"date": "2025-03-10", "surgeon": "Dr. Silva", "unit": "Unit 2",
		},
		"completedBy": "Dr. Silva",
	}
}

func TestCreateRequiresSigner(t *testing.T) {
	svc := NewService(newMockRepo())

	body := validSubmission()
	delete(body, "completedBy")
	if _, err := svc.Create(context.Background(), body); err == nil {
		t.Error("unsigned record should be rejected")
	}

	rec, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateRequiresEventDetails(t *testing.T) {
	svc := NewService(newMockRepo())
	for _, missing := range []string{"date", "surgeon", "unit"} {
		body := validSubmission()
		tx := body["transplant"].(map[string]any)
		delete(tx, missing)
		if _, err := svc.Create(context.Background(), body); err == nil {
			t.Errorf("missing transplant %s should be rejected", missing)
		}
	}
}

func TestMultipleSurgeriesPerPatient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	first, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.recs[first.ID].CreatedAt = time.Now().Add(-24 * time.Hour)

	second := validSubmission()
	second["transplant"].(map[string]any)["date"] = "2025-06-20"
	if _, err := svc.Create(context.Background(), second); err != nil {
		t.Fatalf("second transplant for same patient must be allowed: %v", err)
	}

	all, err := svc.ListByPHN(context.Background(), "PHN-1")
	if err != nil {
		t.Fatalf("ListByPHN: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d records, want 2", len(all))
	}

	latest, err := svc.LatestByPHN(context.Background(), "PHN-1")
	if err != nil {
		t.Fatalf("LatestByPHN: %v", err)
	}
	if latest.Transplant.Date != "2025-06-20" {
		t.Errorf("latest = %q, want the most recently created", latest.Transplant.Date)
	}

	exists, err := svc.ExistsForPHN(context.Background(), "PHN-1")
	if err != nil || !exists {
		t.Errorf("ExistsForPHN = %v, %v", exists, err)
	}
	exists, err = svc.ExistsForPHN(context.Background(), "PHN-none")
	if err != nil || exists {
		t.Errorf("ExistsForPHN for unknown phn = %v, %v", exists, err)
	}
}

func TestUpdateKeepsIdentityAndCreation(t *testing.T) {
	svc := NewService(newMockRepo())
	rec, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	body := validSubmission()
	body["postOp"] = map[string]any{"delayedGraftFunction": true, "dialysisRequired": true}
	updated, err := svc.Update(context.Background(), rec.ID, body)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != rec.ID {
		t.Error("update must keep the record id")
	}
	if !updated.PostOp.DelayedGraftFunction || !updated.PostOp.DialysisRequired {
		t.Errorf("post-op flags lost: %+v", updated.PostOp)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Error("update must not rewrite creation time")
	}
}
