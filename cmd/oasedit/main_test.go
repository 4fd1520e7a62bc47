package main

import "testing"

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"definitons", "definitions"},
		{"propertes", "properties"},
		{"propery", "property"},
		{"sorce", "source"},
		{"replase", "replace"},
		{"clon", "clone"},
		{"delet", "delete"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		{"xyz", ""},
		{"foobar", ""},
		{"definitionsss!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := suggestCommand(tt.input)
			if got != tt.expected {
				t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEditDistance(t *testing.T) {
	if d := editDistance("kitten", "sitting"); d != 3 {
		t.Errorf("editDistance(kitten, sitting) = %d, want 3", d)
	}
	if d := editDistance("", "abc"); d != 3 {
		t.Errorf("editDistance(\"\", abc) = %d, want 3", d)
	}
}
