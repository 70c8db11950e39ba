package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerror "github.com/okr-bot/backend/internal/domain/error"
)

// Field limits shared by objectives and key results.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxUnitLength        = 20
	DefaultUnit          = "percent"
	DueDateLayout        = "2006-01-02"
)

// NotSetDueDate is the placeholder chat clients send for an absent due date.
const NotSetDueDate = "Not set"

// ParseDueDate parses a YYYY-MM-DD date. Empty input and "Not set" mean no due date.
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, NotSetDueDate) {
		return nil, nil
	}

	due, err := time.Parse(DueDateLayout, raw)
	if err != nil {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDueDate,
			"invalid due date format, use YYYY-MM-DD",
		)
	}
	return &due, nil
}

// FormatDueDate renders a due date for display.
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return NotSetDueDate
	}
	return due.Format(DueDateLayout)
}

// ValidateTitle checks that a trimmed title is present and within MaxTitleLength.
func ValidateTitle(title string, missingCode, tooLongCode domainerror.OKRErrorCode) error {
	if title == "" {
		return domainerror.NewValidationError(missingCode, "title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return domainerror.NewValidationError(tooLongCode, "title must be 200 characters or less")
	}
	return nil
}

// ValidateDescription checks a description against MaxDescriptionLength.
func ValidateDescription(description string, code domainerror.OKRErrorCode) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return domainerror.NewValidationError(code, "description must be 1000 characters or less")
	}
	return nil
}

// NormalizeUser strips the chat mention prefix and surrounding whitespace from a user identifier.
func NormalizeUser(user string) string {
	return strings.TrimPrefix(strings.TrimSpace(user), "@")
}

func addToSet(set []string, user string) ([]string, bool) {
	for _, existing := range set {
		if existing == user {
			return set, false
		}
	}
	return append(set, user), true
}

func removeFromSet(set []string, user string) ([]string, bool) {
	for i, existing := range set {
		if existing == user {
			out := make([]string, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...), true
		}
	}
	return set, false
}

func containsUser(set []string, user string) bool {
	for _, existing := range set {
		if existing == user {
			return true
		}
	}
	return false
}
