package store

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seeded() *PostStore {
	s := NewPostStore()
	s.Replace([]Post{
		{ID: 1, Title: "first", Body: "body one"},
		{ID: 2, Title: "second", Body: "body two"},
		{ID: 5, Title: "fifth", Body: "body five"},
	})
	return s
}

func TestPostStore_FindByID(t *testing.T) {
	s := seeded()

	p, ok := s.FindByID(2)
	if !ok {
		t.Fatal("expected post 2 to exist")
	}
	if p.Title != "second" {
		t.Errorf("expected title 'second', got %q", p.Title)
	}

	if _, ok := s.FindByID(99); ok {
		t.Error("post 99 should not exist")
	}
}

func TestPostStore_RemoveByID(t *testing.T) {
	s := seeded()

	s.RemoveByID(2)
	if s.Len() != 2 {
		t.Errorf("expected len 2 after remove, got %d", s.Len())
	}
	if _, ok := s.FindByID(2); ok {
		t.Error("post 2 should be gone")
	}

	// Missing id is a no-op.
	s.RemoveByID(99)
	if s.Len() != 2 {
		t.Errorf("remove of missing id changed length: %d", s.Len())
	}

	// Order of survivors is preserved.
	want := []Post{
		{ID: 1, Title: "first", Body: "body one"},
		{ID: 5, Title: "fifth", Body: "body five"},
	}
	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("unexpected posts after remove (-want +got):\n%s", diff)
	}
}

func TestPostStore_UpdateByID_Idempotent(t *testing.T) {
	s := seeded()

	s.UpdateByID(5, "edited", "edited body")
	once := s.All()

	s.UpdateByID(5, "edited", "edited body")
	twice := s.All()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second identical update changed state (-once +twice):\n%s", diff)
	}

	p, _ := s.FindByID(5)
	if p.Title != "edited" || p.Body != "edited body" {
		t.Errorf("update not applied: %+v", p)
	}
}

func TestPostStore_UpdateByID_MissingIsNoop(t *testing.T) {
	s := seeded()
	before := s.All()
	s.UpdateByID(42, "x", "y")
	if diff := cmp.Diff(before, s.All()); diff != "" {
		t.Errorf("update of missing id mutated store:\n%s", diff)
	}
}

func TestPostStore_ReplaceClearsLoadErr(t *testing.T) {
	s := NewPostStore()
	s.SetLoadErr()
	if !s.LoadErr() {
		t.Fatal("expected load error to be set")
	}
	s.Replace([]Post{{ID: 1}})
	if s.LoadErr() {
		t.Error("Replace should clear the load error")
	}
}

func TestPostStore_AllReturnsCopy(t *testing.T) {
	s := seeded()
	got := s.All()
	got[0].Title = "mutated"
	p, _ := s.FindByID(1)
	if p.Title != "first" {
		t.Error("All() must not expose internal storage")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than limit", "hello", 50, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"one over limit", "hello!", 5, "hello..."},
		{"empty", "", 10, ""},
		{"multibyte runes", "héllo wörld", 5, "héllo..."},
		{"long body", strings.Repeat("a", 200), 80, strings.Repeat("a", 80) + "..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.max); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncate_IdempotentOnShortStrings(t *testing.T) {
	s := "already short"
	if Truncate(Truncate(s, 50), 50) != s {
		t.Error("truncate of a short string must be the identity")
	}
}
