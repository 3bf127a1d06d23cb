package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayName returns the canonical upper-cased form of a configured name
func DisplayName(s string) string {
	return strings.ToUpper(s)
}

// CompactSlug lower-cases s and drops every space ("Top Of Rack" -> "topofrack")
func CompactSlug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// LowerSlug lower-cases s and keeps spaces as they are
func LowerSlug(s string) string {
	return strings.ToLower(s)
}

// Slugify converts a string to a URL-safe slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	// Remove any characters that aren't alphanumeric or hyphens
	var result strings.Builder
	for _, char := range s {
		if (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-' {
			result.WriteRune(char)
		}
	}
	return result.String()
}

// GetIDFromObject extracts an ID from various NetBox object formats
func GetIDFromObject(obj interface{}) int {
	if obj == nil {
		return 0
	}

	switch v := obj.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		// Handle string IDs by attempting to parse
		var id int
		if _, err := fmt.Sscanf(v, "%d", &id); err == nil {
			return id
		}
		return 0
	case map[string]interface{}:
		return GetIDFromObject(v["id"])
	}

	return 0
}

// GetNumber reads a numeric field from a NetBox object.
// JSON numbers arrive as float64, NetBox 4 serializes decimals (u_height) as strings.
func GetNumber(obj map[string]interface{}, key string) (float64, bool) {
	if obj == nil {
		return 0, false
	}

	switch v := obj[key].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	return 0, false
}

// GetString reads a string field from a NetBox object
func GetString(obj map[string]interface{}, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
