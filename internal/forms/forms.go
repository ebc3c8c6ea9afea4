// Package forms holds the per-form field rules. Structural rules (required,
// length) run first; semantic rules only run for a field that passed them.
package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Errors maps a form field name to its messages, in the order they were found.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// required reports a missing value; whitespace-only counts as missing.
func required(errs Errors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "This field is required.")
		return false
	}
	return true
}

// length checks the character count against an inclusive range.
func length(errs Errors, field, value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		errs.Add(field, fmt.Sprintf("Field must be between %d and %d characters long.", min, max))
		return false
	}
	return true
}

// requiredLength is the common "required, min..max characters" rule.
func requiredLength(errs Errors, field, value string, min, max int) bool {
	return required(errs, field, value) && length(errs, field, value, min, max)
}
