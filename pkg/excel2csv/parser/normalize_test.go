package parser

import (
	"reflect"
	"testing"
)

func TestPrune(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]string
		expected [][]string
	}{
		{
			name:     "nil grid",
			input:    nil,
			expected: [][]string{},
		},
		{
			name:     "all empty",
			input:    [][]string{{"", ""}, {}, {""}},
			expected: [][]string{},
		},
		{
			name: "empty rows and columns removed",
			input: [][]string{
				{"", "", "", ""},
				{"a", "", "b"},
				{},
				{"c", "", "", "d"},
			},
			expected: [][]string{
				{"a", "b", ""},
				{"c", "", "d"},
			},
		},
		{
			name: "leading empty column",
			input: [][]string{
				{"", "x"},
				{"", "y", "z"},
			},
			expected: [][]string{
				{"x", ""},
				{"y", "z"},
			},
		},
		{
			name: "whitespace and zero are data",
			input: [][]string{
				{" ", "0"},
			},
			expected: [][]string{
				{" ", "0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prune(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Prune(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPruneIsIdempotent(t *testing.T) {
	grids := [][][]string{
		{{"", "a", ""}, {}, {"b", "", "", "c"}},
		{{"1"}, {"", "", "2"}, {"", ""}},
		{{"", ""}, {"", "x"}},
	}

	for _, grid := range grids {
		once := Prune(grid)
		twice := Prune(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Prune not idempotent for %q: %q then %q", grid, once, twice)
		}
	}
}

func TestPruneKeepsEveryValue(t *testing.T) {
	grid := [][]string{
		{"", "a", "", ""},
		{},
		{"b", "", "", "c"},
		{"", "", "", ""},
		{"", "d"},
	}

	if got, want := CountNonEmpty(Prune(grid)), CountNonEmpty(grid); got != want {
		t.Errorf("Prune dropped data: %d non-empty cells, expected %d", got, want)
	}
}

func TestPruneDoesNotModifyInput(t *testing.T) {
	grid := [][]string{{"", "a"}, {"", "b"}}
	Prune(grid)
	if !reflect.DeepEqual(grid, [][]string{{"", "a"}, {"", "b"}}) {
		t.Errorf("Prune modified its input: %q", grid)
	}
}

func TestPad(t *testing.T) {
	got := Pad([][]string{{"a"}, {}, {"b", "", "c"}})
	expected := [][]string{{"a", "", ""}, {"", "", ""}, {"b", "", "c"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Pad = %q, expected %q", got, expected)
	}
}
