package http

import (
	"errors"
	"html"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"finance/internal/core"
)

var stripPolicy = bluemonday.StrictPolicy()

// sanitizeInput strips markup and control characters and trims whitespace.
// The result is plain text; templates escape it on output.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.TrimSpace(s)
}

// progressWidth turns a percentage into a bar width: rounded, at least 2 for
// any non-zero share so small categories stay visible, at most 100.
func progressWidth(percent float64) int {
	if percent <= 0 || math.IsNaN(percent) {
		return 0
	}
	width := int(math.Round(percent))
	if width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

// validationMessage maps input errors to the message shown next to the form.
// ok is false for errors that are not caused by the input.
func validationMessage(err error) (msg string, ok bool) {
	var missing *core.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return "Please fill in the " + missing.Field + ".", true
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a number different from zero, up to 100 billion.", true
	case errors.Is(err, core.ErrUnknownCategory):
		return "Unknown category.", true
	case errors.Is(err, core.ErrInvalidKind):
		return "Choose income or expense.", true
	default:
		return "", false
	}
}
