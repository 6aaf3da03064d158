package pool

import (
	"errors"
	"testing"
)

func TestInternAssignsDenseIndexes(t *testing.T) {
	p := New[int]()
	if got := p.Intern([]int{1, 2, 3}); got != 0 {
		t.Fatalf("first Intern = %d, want 0", got)
	}
	if got := p.Intern([]int{4, 5}); got != 1 {
		t.Fatalf("second Intern = %d, want 1", got)
	}
	if got := p.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
}

func TestInternIsIdempotent(t *testing.T) {
	p := New[float64]()
	a := p.Intern([]float64{1.5, 2.5})
	b := p.Intern([]float64{1.5, 2.5})
	if a != b {
		t.Fatalf("equal sequences got indexes %d and %d", a, b)
	}
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1", p.Len())
	}
}

func TestInternCopiesInput(t *testing.T) {
	p := New[int]()
	v := []int{7, 8}
	p.Intern(v)
	v[0] = 99
	if got, err := p.Lookup([]int{7, 8}); err != nil || got != 0 {
		t.Fatalf("Lookup after caller mutation = %d, %v", got, err)
	}
}

func TestLookupMissing(t *testing.T) {
	p := New[int]()
	p.Intern([]int{1})
	if _, err := p.Lookup([]int{2}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup = %v, want ErrNotFound", err)
	}
}

func TestHashCollisionsDoNotConflate(t *testing.T) {
	// Degenerate hash forces every sequence into one bucket.
	p := newWithHash[int](func([]int) uint64 { return 42 })

	a := p.Intern([]int{1, 2})
	b := p.Intern([]int{3, 4})
	c := p.Intern([]int{1, 2})
	if a == b {
		t.Fatalf("distinct sequences conflated at index %d", a)
	}
	if a != c {
		t.Fatalf("equal sequences got indexes %d and %d", a, c)
	}
	if got, err := p.Lookup([]int{3, 4}); err != nil || got != b {
		t.Fatalf("Lookup = %d, %v, want %d", got, err, b)
	}
}

func TestLengthPrefilterBeforeElements(t *testing.T) {
	p := newWithHash[int](func([]int) uint64 { return 0 })
	p.Intern([]int{1, 2, 3})
	if _, err := p.Lookup([]int{1, 2}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("prefix sequence matched: %v", err)
	}
}

func TestAtReturnsStoredSequence(t *testing.T) {
	p := New[float64]()
	p.Intern([]float64{0.5})
	got := p.At(0)
	if len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("At(0) = %v", got)
	}
}
