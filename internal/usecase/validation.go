package usecase

import (
	"math"
	"net/mail"
	"strings"
)

// ValidateAmount reports whether amount is a positive finite number.
func ValidateAmount(amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount > 0
}

// ValidateEmail checks that address is a syntactically valid bare email.
func ValidateEmail(address string) bool {
	address = strings.TrimSpace(address)
	if address == "" {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	// Reject display-name forms like "Bob <bob@example.com>"; payout
	// platforms expect the bare address.
	return parsed.Address == address
}
