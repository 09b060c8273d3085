package channels

import "strings"

// DefaultCountryCode is applied to local numbers with a leading zero.
// Baked-in business rule with no per-tenant override.
const DefaultCountryCode = "92"

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

// NormalizePhone converts assorted phone formats to an E.164-like string.
// Returns "" when the number cannot be resolved.
func NormalizePhone(raw string) string {
	cleaned := phoneSeparators.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+" + DefaultCountryCode + cleaned[1:]
	case strings.HasPrefix(cleaned, DefaultCountryCode) && len(cleaned) >= 12:
		return "+" + cleaned
	case len(cleaned) >= 10:
		// Assume a bare international number.
		return "+" + cleaned
	default:
		return ""
	}
}
