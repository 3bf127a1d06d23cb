package utils

import (
	"strings"
)

// NormalizeColor turns a configured role color ("#F00", "2196f3") into the
// 6-digit lower-case hex NetBox stores. Anything else yields "".
func NormalizeColor(input string) string {
	hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input), "#"))

	for _, c := range hex {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ""
		}
	}

	switch len(hex) {
	case 6:
		return hex
	case 3:
		return string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	default:
		return ""
	}
}
