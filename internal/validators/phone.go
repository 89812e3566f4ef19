package validators

import "strings"

const (
	minPhoneDigits = 6
	maxPhoneDigits = 15
)

// IsPhoneValid accepts digits with optional leading '+' and the usual
// separators (space, dash, dot, parentheses).
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}

	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}
