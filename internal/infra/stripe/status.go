package stripe

import "strings"

// Normalized subscription states the app cares about. Anything Stripe
// reports beyond these passes through unchanged.
func NormalizeStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch strings.TrimSpace(*s) {
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(*s)
	}
}

// GrantsAccess reports whether a normalized status means the customer
// currently has paid access.
func GrantsAccess(normalized string) bool {
	return normalized == "active" || normalized == "trialing"
}
