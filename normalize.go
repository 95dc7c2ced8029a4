package formz

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NFC returns s in Unicode normalization form C, so visually identical
// input compares equal in form data.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Fold returns the NFC, case-folded form of s with surrounding whitespace
// removed. Suitable for identifiers such as email addresses and user names.
//
//	email := formz.NewField("email", formz.WithNormalize(formz.Fold))
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
