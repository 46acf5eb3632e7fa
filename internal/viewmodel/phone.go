package viewmodel

import "strings"

// MaskPhone strips every non-digit and formats what is left as
// (DDD) DDD-DDDD, progressively:
//
//	0-3 digits  "(" + digits
//	4-6 digits  "(DDD) D.."
//	7+ digits   "(DDD) DDD-DDDD"
//
// Digits past the tenth are not displayed.
func MaskPhone(input string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)

	switch n := len(digits); {
	case n <= 3:
		return "(" + digits
	case n <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:min(n, 10)]
	}
}
