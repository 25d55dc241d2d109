package investigation

import (
	"testing"
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	for _, rec := range []Record{
		{PHN: "PHN-1", Tag: TagFrequent, Date: "2025-06-01", SerumCreatinine: "1.1"},
		{PHN: "PHN-1", Tag: TagFrequent, Date: "2025-07-01", SerumCreatinine: "1.2"},
		{PHN: "PHN-1", Tag: TagFrequent, Date: "2025-08-01", SerumCreatinine: "1.0"},
		{PHN: "PHN-1", Tag: TagAnnual, Date: "2024-12-15", HbA1c: "6.1"},
		{PHN: "PHN-1", Tag: TagAnnual, Date: "2023-12-10", HbA1c: "6.4"},
		{PHN: "PHN-2", Tag: TagFrequent, Date: "2025-08-20"},
	} {
		r := rec
		if err := s.Add(&r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
}

func TestAddValidation(t *testing.T) {
	s := NewStore()
	if err := s.Add(&Record{Tag: TagFrequent, Date: "2025-01-01"}); err == nil {
		t.Error("missing phn should be rejected")
	}
	if err := s.Add(&Record{PHN: "P", Tag: TagFrequent}); err == nil {
		t.Error("missing date should be rejected")
	}
	if err := s.Add(&Record{PHN: "P", Tag: "monthly", Date: "2025-01-01"}); err == nil {
		t.Error("unknown tag should be rejected")
	}
}

func TestRecentPerTag(t *testing.T) {
	s := NewStore()
	seed(t, s)

	recent := s.Recent("PHN-1", TagFrequent, 2)
	if len(recent) != 2 {
		t.Fatalf("got %d records, want 2", len(recent))
	}
	if recent[0].Date != "2025-08-01" || recent[1].Date != "2025-07-01" {
		t.Errorf("recency order wrong: %s, %s", recent[0].Date, recent[1].Date)
	}

	annual := s.Recent("PHN-1", TagAnnual, 5)
	if len(annual) != 2 || annual[0].Date != "2024-12-15" {
		t.Errorf("annual tag query wrong: %v", annual)
	}

	if got := s.Recent("PHN-1", TagFrequent, 0); len(got) != 0 {
		t.Errorf("n=0 should return nothing, got %d", len(got))
	}
	if got := s.Recent("PHN-none", TagFrequent, 3); len(got) != 0 {
		t.Errorf("unknown patient should return nothing, got %d", len(got))
	}
}

func TestListByPHNIsolatesPatients(t *testing.T) {
	s := NewStore()
	seed(t, s)

	if got := len(s.ListByPHN("PHN-1")); got != 5 {
		t.Errorf("PHN-1 has %d records, want 5", got)
	}
	if got := len(s.ListByPHN("PHN-2")); got != 1 {
		t.Errorf("PHN-2 has %d records, want 1", got)
	}
}

func TestStoreCopiesOnAdd(t *testing.T) {
	s := NewStore()
	rec := Record{PHN: "PHN-3", Tag: TagFrequent, Date: "2025-01-01", SerumCreatinine: "1.5"}
	if err := s.Add(&rec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rec.SerumCreatinine = "9.9"

	got := s.ListByPHN("PHN-3")
	if len(got) != 1 || got[0].SerumCreatinine != "1.5" {
		t.Errorf("store must not alias the caller's record: %+v", got)
	}
}
