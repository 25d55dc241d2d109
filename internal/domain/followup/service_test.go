package followup

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	notes []*Note
}

// matches mirrors the repository's SQL filter: case-insensitive substring
// plus an inclusive lexical date range over the ISO dates the notes carry.
func matches(f Filter, n *Note) bool {
	if f.Text != "" && !strings.Contains(strings.ToLower(n.Text), strings.ToLower(f.Text)) {
		return false
	}
	if f.From != "" && n.Date < f.From {
		return false
	}
	if f.To != "" && n.Date > f.To {
		return false
	}
	return true
}

func (m *mockRepo) Create(_ context.Context, n *Note) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	cp := *n
	m.notes = append(m.notes, &cp)
	return nil
}

func (m *mockRepo) ListByPHN(_ context.Context, phn string, f Filter) ([]*Note, error) {
	var result []*Note
	for _, n := range m.notes {
		if n.PHN == phn && matches(f, n) {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	for _, n := range []Note{
		{PHN: "PHN-1", Date: "2025-01-10", Text: "Creatinine stable"},
		{PHN: "PHN-1", Date: "2025-03-05", Text: "Tacrolimus level low, dose adjusted"},
		{PHN: "PHN-1", Date: "2025-06-18", Text: "Routine review, no complaints"},
		{PHN: "PHN-2", Date: "2025-02-01", Text: "Other patient"},
	} {
		note := n
		if err := svc.Create(context.Background(), &note); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&mockRepo{})
	cases := []Note{
		{Date: "2025-01-01", Text: "x"},
		{PHN: "PHN-1", Text: "x"},
		{PHN: "PHN-1", Date: "2025-01-01"},
	}
	for _, n := range cases {
		note := n
		if err := svc.Create(context.Background(), &note); err == nil {
			t.Errorf("incomplete note %+v should be rejected", n)
		}
	}
}

func TestListOrderedByDate(t *testing.T) {
	svc := NewService(&mockRepo{})
	seed(t, svc)

	notes, err := svc.ListByPHN(context.Background(), "PHN-1", Filter{})
	if err != nil {
		t.Fatalf("ListByPHN: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("got %d notes, want 3", len(notes))
	}
	for i := 1; i < len(notes); i++ {
		if notes[i].Date < notes[i-1].Date {
			t.Errorf("notes out of order: %s before %s", notes[i-1].Date, notes[i].Date)
		}
	}
}

func TestTextFilter(t *testing.T) {
	svc := NewService(&mockRepo{})
	seed(t, svc)

	notes, err := svc.ListByPHN(context.Background(), "PHN-1", Filter{Text: "tacrolimus"})
	if err != nil {
		t.Fatalf("ListByPHN: %v", err)
	}
	if len(notes) != 1 || notes[0].Date != "2025-03-05" {
		t.Errorf("text filter wrong: %v", notes)
	}
}

func TestDateRangeFilter(t *testing.T) {
	svc := NewService(&mockRepo{})
	seed(t, svc)

	notes, err := svc.ListByPHN(context.Background(), "PHN-1", Filter{From: "2025-02-01", To: "2025-04-01"})
	if err != nil {
		t.Fatalf("ListByPHN: %v", err)
	}
	if len(notes) != 1 || notes[0].Date != "2025-03-05" {
		t.Errorf("date range filter wrong: %v", notes)
	}
}

func TestLatest(t *testing.T) {
	svc := NewService(&mockRepo{})
	seed(t, svc)

	latest, err := svc.Latest(context.Background(), "PHN-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Date != "2025-06-18" {
		t.Errorf("latest = %+v, want the 2025-06-18 note", latest)
	}

	none, err := svc.Latest(context.Background(), "PHN-none")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for patient with no notes, got %+v", none)
	}
}
