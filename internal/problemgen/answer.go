package problemgen

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownCategory is returned when a label does not name a slope category.
var ErrUnknownCategory = errors.New("unknown slope category")

// ParseCategory parses a learner's choice.
//
// Accepted forms:
// - the category label, case-insensitive ("positive", "Zero")
// - the 1-based choice index in canonical order ("1".."4")
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if idx, err := strconv.Atoi(s); err == nil {
		if idx >= 1 && idx <= len(Categories) {
			return Categories[idx-1], nil
		}
		return "", ErrUnknownCategory
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// IsCategory reports whether s is exactly one of the four category labels.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if s == string(c) {
			return true
		}
	}
	return false
}

// CheckAnswer reports whether choice is the correct category for q.
// An empty choice is never correct.
func CheckAnswer(choice string, q *Question) bool {
	if q == nil || choice == "" {
		return false
	}
	return choice == string(q.Answer)
}
