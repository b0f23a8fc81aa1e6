// Package search classifies operator input into lookup strategies and
// derives candidate ticket numbers for suffix lookups.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind identifies the lookup strategy chosen for a query.
type Kind int

const (
	KindNone         Kind = iota // Empty query, nothing to look up
	KindPhone                    // Customer lookup by phone digits
	KindExactTicket              // Single ticket lookup by exact number
	KindSuffixTicket             // Ticket lookup by 3-digit suffix
	KindDualText                 // Free text against both customers and tickets
)

// String returns a human-readable name for the strategy kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPhone:
		return "phone"
	case KindExactTicket:
		return "exact-ticket"
	case KindSuffixTicket:
		return "suffix-ticket"
	case KindDualText:
		return "dual-text"
	default:
		return "unknown"
	}
}

// Strategy is the classified form of one query. Exactly one payload field is
// meaningful, selected by Kind.
type Strategy struct {
	Kind   Kind
	Digits string // KindPhone: digit-only projection of the input
	Number int64  // KindExactTicket and KindSuffixTicket: numeric value of the input
	Suffix int    // KindSuffixTicket: last three digits, 0-999
	Text   string // KindDualText: trimmed input
}

// String renders the strategy for logs.
func (s Strategy) String() string {
	switch s.Kind {
	case KindPhone:
		return fmt.Sprintf("phone(%s)", s.Digits)
	case KindExactTicket:
		return fmt.Sprintf("exact-ticket(%d)", s.Number)
	case KindSuffixTicket:
		return fmt.Sprintf("suffix-ticket(%03d)", s.Suffix)
	case KindDualText:
		return fmt.Sprintf("dual-text(%q)", s.Text)
	default:
		return "none"
	}
}

// phone number digit bounds, inclusive
const (
	minPhoneDigits = 7
	maxPhoneDigits = 11
)

// maxExactDigits is the longest input still treated as an exact ticket number.
const maxExactDigits = 6

// Classify maps raw operator input to a lookup strategy. First match wins:
//
//  1. Empty after trimming: KindNone.
//  2. 7-11 digits after stripping non-digits, and no letters anywhere in the
//     raw input: KindPhone.
//  3. Entirely numeric, exactly 3 characters: KindSuffixTicket.
//  4. Entirely numeric, at most 6 characters: KindExactTicket.
//  5. Anything else: KindDualText.
//
// Classify is pure; it never errors, unmatched input falls through to the
// dual text strategy.
func Classify(raw string) Strategy {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Strategy{Kind: KindNone}
	}

	digits := digitsOnly(raw)
	if len(digits) >= minPhoneDigits && len(digits) <= maxPhoneDigits && !containsLetter(raw) {
		return Strategy{Kind: KindPhone, Digits: digits}
	}

	if isNumeric(trimmed) {
		// Numeric input this short is always parseable; ParseInt cannot fail.
		n, _ := strconv.ParseInt(trimmed, 10, 64)
		if len(trimmed) == 3 {
			return Strategy{Kind: KindSuffixTicket, Suffix: int(n), Number: n}
		}
		if len(trimmed) <= maxExactDigits {
			return Strategy{Kind: KindExactTicket, Number: n}
		}
	}

	return Strategy{Kind: KindDualText, Text: trimmed}
}

// digitsOnly strips every non-digit character from s.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// containsLetter reports whether s has any letter in it. A letter anywhere
// disqualifies the phone interpretation even when enough digits are present.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// isNumeric reports whether s is non-empty and consists of ASCII digits only.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
