package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[string]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[string]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.patients[p.PHN] = &cp
	return nil
}

func (m *mockRepo) GetByPHN(_ context.Context, phn string) (*Patient, error) {
	p, ok := m.patients[phn]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	existing, ok := m.patients[p.PHN]
	if !ok {
		return ErrNotFound
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	cp := *p
	m.patients[p.PHN] = &cp
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
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

func (m *mockRepo) SearchByName(_ context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func TestRegisterRejectsDuplicatePHN(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Register(context.Background(), &Patient{PHN: "PHN-1", Name: "First"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Register(context.Background(), &Patient{PHN: "PHN-1", Name: "Second"}); err == nil {
		t.Error("duplicate phn should be rejected")
	}
}

func TestRegisterRequiresIdentity(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Register(context.Background(), &Patient{Name: "No PHN"}); err == nil {
		t.Error("missing phn should be rejected")
	}
	if err := svc.Register(context.Background(), &Patient{PHN: "PHN-2"}); err == nil {
		t.Error("missing name should be rejected")
	}
}

func TestUpdateDemographics(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.UpdateDemographics(context.Background(), &Patient{PHN: "PHN-3", Name: "X"}); err == nil {
		t.Error("update for unknown phn should fail")
	}

	if err := svc.Register(context.Background(), &Patient{PHN: "PHN-3", Name: "Before", ContactNo: "011"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.UpdateDemographics(context.Background(), &Patient{PHN: "PHN-3", Name: "After", ContactNo: "077"}); err != nil {
		t.Fatalf("UpdateDemographics: %v", err)
	}

	p, err := svc.GetByPHN(context.Background(), "PHN-3")
	if err != nil {
		t.Fatalf("GetByPHN: %v", err)
	}
	if p.Name != "After" || p.ContactNo != "077" {
		t.Errorf("demographics not updated: %+v", p)
	}
}
