package textnorm

import "testing"

func TestClean_RemovesFillers(t *testing.T) {
	n := New(true)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"leading filler with comma", "um, I think uhhh this works", "I think this works"},
		{"stretched filler", "ummmm hello there", "hello there"},
		{"filler mid sentence", "so I hmm went home", "so I went home"},
		{"erm and eh", "erm, well eh maybe", "well maybe"},
		{"filler only", "um", ""},
		{"no fillers", "nothing to remove here", "nothing to remove here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClean_KeepsFillersWhenDisabled(t *testing.T) {
	n := New(false)

	got := n.Clean("um, I think this works")
	if got != "um, I think this works" {
		t.Errorf("expected fillers kept, got %q", got)
	}
}

func TestClean_FillerPrefixWordsUntouched(t *testing.T) {
	n := New(true)

	// "umbrella" starts with "um" but is not a whole-word filler match.
	got := n.Clean("the umbrella is wet")
	if got != "the umbrella is wet" {
		t.Errorf("expected word kept, got %q", got)
	}
}

func TestClean_WhitespaceAndPunctuation(t *testing.T) {
	n := New(true)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs", "hello   world\t\tagain", "hello world again"},
		{"trims ends", "  hello world  ", "hello world"},
		{"space before comma", "hello , world", "hello, world"},
		{"space before period", "that is all .", "that is all."},
		{"space before question mark", "really ?", "really?"},
		{"newlines collapsed", "one\ntwo\nthree", "one two three"},
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	samples := []string{
		"um, I think uhhh this works",
		"  hello   world , again .",
		"ummmm",
		"",
		"no change needed",
		"erm well eh , fine ?",
		"tabs\tand\nnewlines everywhere",
	}

	for _, enabled := range []bool{true, false} {
		n := New(enabled)
		for _, s := range samples {
			once := n.Clean(s)
			twice := n.Clean(once)
			if once != twice {
				t.Errorf("Clean not idempotent (fillers=%v) for %q: first %q, second %q",
					enabled, s, once, twice)
			}
		}
	}
}
