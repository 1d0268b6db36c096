// Package validation holds the input format checks applied before any
// persistence or crypto work.
package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	usernameRe       = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe          = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	ingredientNameRe = regexp.MustCompile(`^[a-zA-Z0-9 -]{2,50}$`)
)

const passwordSymbols = "@$!%*?&"

// ValidUsername reports whether username is 3-20 characters of letters, digits
// and underscores.
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidPassword requires at least 8 characters with at least one uppercase
// letter, one lowercase letter, one digit and one symbol from the fixed set,
// and no characters outside that alphabet.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// ValidDogNameOrBreed accepts non-empty strings up to 50 characters.
func ValidDogNameOrBreed(s string) bool {
	return len(s) >= 1 && len(s) <= 50
}

// ValidWeight assumes kilograms; no dog weighs 200kg.
func ValidWeight(weight float64) bool {
	return weight > 0 && weight < 200
}

func ValidDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func ValidRecipeName(name string) bool {
	return len(name) >= 3 && len(name) <= 100
}

func ValidIngredientName(name string) bool {
	return ingredientNameRe.MatchString(name)
}

func ValidQuantity(quantity float64) bool {
	return quantity > 0
}

func ValidUnit(unit string) bool {
	return len(unit) >= 1 && len(unit) <= 20
}
