package utils

import "testing"

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{" TRUE ", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		if got := BoolFromString(tt.in); got != tt.want {
			t.Errorf("BoolFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		name string
		ptr  string
		want string
	}{
		{"empty", "", ""},
		{"root fragment", "#", ""},
		{"root slash", "/", ""},
		{"index only", "/0", "[0]"},
		{"index then field", "/2/title", "[2].title"},
		{"fragment prefix", "#/1/completed", "[1].completed"},
		{"escaped slash", "/a~1b", "a/b"},
		{"escaped tilde", "/a~0b", "a~b"},
		{"nested fields", "/project/name", "project.name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
