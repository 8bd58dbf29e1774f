// Package validate holds the field predicates and the property-draft
// checker shared by the signup, settings, add-property and edit-property
// flows. Everything here is pure: no view, no network.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// passwordSymbols is the symbol set a password must draw from.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

var phoneRe = regexp.MustCompile(`^(\+[0-9]{1,3}[ -]?)?[0-9]{10}$`)

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// Password reports whether p satisfies the account password policy:
// at least 8 characters, at least one decimal digit and at least one
// symbol.
func Password(p string) bool {
	if len(p) < 8 {
		return false
	}
	hasDigit := false
	hasSymbol := false
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasDigit && hasSymbol
}

// PasswordsMatch reports whether the confirmation field is non-empty and
// equal to the password.
func PasswordsMatch(password, confirmation string) bool {
	return confirmation != "" && confirmation == password
}

// Age computes the calendar age at today: the year difference, reduced by
// one when the birthday has not been reached yet.
func Age(dob, today time.Time) int {
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

// Adult reports whether the date of birth makes the person 18 or older at
// today.
func Adult(dob, today time.Time) bool {
	return Age(dob, today) >= 18
}

// Phone reports whether s is a 10-digit phone number, optionally prefixed
// with a `+` country code of one to three digits.
func Phone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// Pincode reports whether s is a 6-digit postal code.
func Pincode(s string) bool {
	return pincodeRe.MatchString(strings.TrimSpace(s))
}

// NotPast reports whether d falls on or after today, comparing dates only.
func NotPast(d, today time.Time) bool {
	dy, dm, dd := d.Date()
	ty, tm, td := today.Date()
	if dy != ty {
		return dy > ty
	}
	if dm != tm {
		return dm > tm
	}
	return dd >= td
}

// NonNegative reports whether s parses as a number that is zero or more.
func NonNegative(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v >= 0
}

// Required reports whether s has any non-whitespace content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}
