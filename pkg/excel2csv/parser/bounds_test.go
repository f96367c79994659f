package parser

import "testing"

func TestUsedRange(t *testing.T) {
	tests := []struct {
		rows     [][]string
		expected string
	}{
		{nil, ""},
		{[][]string{{"", ""}, {}}, ""},
		{[][]string{{"a"}}, "A1:A1"},
		{[][]string{{}, {"", "x"}, {"", "", "", "y"}}, "B2:D3"},
		{[][]string{{"", "", "z"}, {"w"}}, "A1:C2"},
	}

	for _, tt := range tests {
		result := UsedRange(tt.rows)
		if result != tt.expected {
			t.Errorf("UsedRange(%q) = %q, expected %q", tt.rows, result, tt.expected)
		}
	}
}

func TestCountNonEmpty(t *testing.T) {
	rows := [][]string{{"", "a"}, {}, {"b", "", "c"}}
	if n := CountNonEmpty(rows); n != 3 {
		t.Errorf("CountNonEmpty = %d, expected 3", n)
	}
	if n := CountNonEmpty(nil); n != 0 {
		t.Errorf("CountNonEmpty(nil) = %d, expected 0", n)
	}
}
