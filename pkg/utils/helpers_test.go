package utils

import (
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase",
			input:    "cisco",
			expected: "CISCO",
		},
		{
			name:     "mixed case with spaces",
			input:    "Top Of Rack",
			expected: "TOP OF RACK",
		},
		{
			name:     "already uppercase",
			input:    "DC1",
			expected: "DC1",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DisplayName(tt.input)
			if result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCompactSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple",
			input:    "Cisco",
			expected: "cisco",
		},
		{
			name:     "spaces removed",
			input:    "Top Of Rack",
			expected: "topofrack",
		},
		{
			name:     "hyphens kept",
			input:    "Catalyst 9300-48P",
			expected: "catalyst9300-48p",
		},
		{
			name:     "tabs are not spaces",
			input:    "A\tB",
			expected: "a\tb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompactSlug(tt.input)
			if result != tt.expected {
				t.Errorf("CompactSlug(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLowerSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple",
			input:    "DC1",
			expected: "dc1",
		},
		{
			name:     "spaces kept",
			input:    "Berlin DC",
			expected: "berlin dc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LowerSlug(tt.input)
			if result != tt.expected {
				t.Errorf("LowerSlug(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "simple",
			expected: "simple",
		},
		{
			name:     "spaces to hyphens",
			input:    "hello world",
			expected: "hello-world",
		},
		{
			name:     "special characters removed",
			input:    "test@#$%123",
			expected: "test123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetIDFromObject(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int
	}{
		{
			name:     "integer",
			input:    42,
			expected: 42,
		},
		{
			name:     "float64",
			input:    27.0,
			expected: 27,
		},
		{
			name:     "numeric string",
			input:    "15",
			expected: 15,
		},
		{
			name:     "map with id float64",
			input:    map[string]interface{}{"id": 200.0},
			expected: 200,
		},
		{
			name:     "negative placeholder",
			input:    map[string]interface{}{"id": -3},
			expected: -3,
		},
		{
			name:     "nil",
			input:    nil,
			expected: 0,
		},
		{
			name:     "map without id",
			input:    map[string]interface{}{"name": "test"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetIDFromObject(tt.input)
			if result != tt.expected {
				t.Errorf("GetIDFromObject(%v) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetNumber(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]interface{}
		expected float64
		expectOK bool
	}{
		{
			name:     "json number",
			obj:      map[string]interface{}{"u_height": float64(42)},
			expected: 42,
			expectOK: true,
		},
		{
			name:     "int",
			obj:      map[string]interface{}{"u_height": 2},
			expected: 2,
			expectOK: true,
		},
		{
			name:     "decimal string",
			obj:      map[string]interface{}{"u_height": "1.5"},
			expected: 1.5,
			expectOK: true,
		},
		{
			name:     "missing",
			obj:      map[string]interface{}{},
			expectOK: false,
		},
		{
			name:     "nil object",
			obj:      nil,
			expectOK: false,
		},
		{
			name:     "garbage string",
			obj:      map[string]interface{}{"u_height": "tall"},
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := GetNumber(tt.obj, "u_height")
			if ok != tt.expectOK {
				t.Fatalf("GetNumber() ok = %v, expected %v", ok, tt.expectOK)
			}
			if result != tt.expected {
				t.Errorf("GetNumber() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
