package codegen

import (
	"errors"
	"testing"
)

func TestCheckName(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"f", true},
		{"rocket_dynamics", true},
		{"_private", true},
		{"F2", true},
		{"", false},
		{"2f", false},
		{"f-g", false},
		{"f g", false},
	}
	for _, c := range cases {
		if got := CheckName(c.in); got != c.want {
			t.Fatalf("CheckName(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in         string
		cpp        bool
		base, sfx  string
	}{
		{"f", false, "f", ".c"},
		{"f", true, "f", ".cpp"},
		{"f.c", true, "f", ".c"},
		{"solver.cxx", false, "solver", ".cxx"},
	}
	for _, c := range cases {
		base, sfx, err := splitName(c.in, c.cpp)
		if err != nil {
			t.Fatalf("splitName(%q): %v", c.in, err)
		}
		if base != c.base || sfx != c.sfx {
			t.Fatalf("splitName(%q) = %q, %q, want %q, %q", c.in, base, sfx, c.base, c.sfx)
		}
	}
}

func TestSplitNameInvalidBase(t *testing.T) {
	if _, _, err := splitName("9lives.c", false); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("splitName = %v, want ErrInvalidName", err)
	}
}

func TestNewRejectsInvalidName(t *testing.T) {
	if _, err := New("bad name", DefaultOptions()); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("New = %v, want ErrInvalidName", err)
	}
}
