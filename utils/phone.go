package utils

import (
	"strings"
)

// NormalizePhone rewrites an Indonesian phone number into the 62-prefixed
// form the payment gateway expects. Empty or placeholder input maps to the
// gateway's sentinel number.
func NormalizePhone(phoneNumber string) string {
	if phoneNumber == "" || phoneNumber == "-" || strings.TrimSpace(phoneNumber) == "" {
		return "62000000000"
	}

	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phoneNumber)

	if !strings.HasPrefix(cleaned, "62") && !strings.HasPrefix(cleaned, "+62") {
		if strings.HasPrefix(cleaned, "0") {
			cleaned = "62" + cleaned[1:]
		} else {
			cleaned = "62" + cleaned
		}
	}

	return strings.ReplaceAll(cleaned, "+", "")
}
