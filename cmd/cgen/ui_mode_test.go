package main

import "testing"

func TestResolveColor(t *testing.T) {
	cases := []struct {
		value   string
		tty     bool
		noColor bool
	}{
		{"auto", true, false},
		{"auto", false, true},
		{"", false, true},
		{"on", false, false},
		{"on", true, false},
		{"off", true, true},
		{"OFF", true, true},
		{" on ", false, false},
	}
	for _, c := range cases {
		noColor, err := resolveColor(c.value, c.tty)
		if err != nil {
			t.Fatalf("resolveColor(%q, %v): %v", c.value, c.tty, err)
		}
		if noColor != c.noColor {
			t.Fatalf("resolveColor(%q, %v) = %v, want %v", c.value, c.tty, noColor, c.noColor)
		}
	}
}

func TestResolveColorRejectsJunk(t *testing.T) {
	if _, err := resolveColor("sometimes", true); err == nil {
		t.Fatal("invalid value accepted")
	}
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		value string
		mode  uiMode
	}{
		{"auto", uiModeAuto},
		{"", uiModeAuto},
		{"on", uiModeOn},
		{"Off", uiModeOff},
	}
	for _, c := range cases {
		mode, err := readUIMode(c.value)
		if err != nil {
			t.Fatalf("readUIMode(%q): %v", c.value, err)
		}
		if mode != c.mode {
			t.Fatalf("readUIMode(%q) = %q, want %q", c.value, mode, c.mode)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatal("invalid value accepted")
	}
}
