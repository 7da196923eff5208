// Package parser turns human-entered due-date text into model.Datetime
// values. The canonical strict form is handled by the model package; this
// package adds relative and natural-language entry on top of it.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/duetrack/duetrack/internal/model"
)

// relativeRegex matches relative expressions like "+5m", "+3h", "+2d", "+1w".
var relativeRegex = regexp.MustCompile(`^\+(\d+)([mhdw])$`)

// ParseDue parses a due-date expression. Supported forms:
//   - "2025-01-05 09:00" (canonical, parsed strictly)
//   - "+5m", "+3h", "+2d", "+1w" (relative to now)
//   - "friday 5pm", "tomorrow 2pm" (natural language)
//
// The result is normalized to minute precision, matching what the backends
// store as due text.
func ParseDue(input string) (model.Datetime, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Datetime{}, fmt.Errorf("due date is required")
	}

	// Canonical form first: it is unambiguous and cheap to check.
	if due, err := model.ParseDatetime(input); err == nil {
		return due, nil
	}

	if match := relativeRegex.FindStringSubmatch(input); match != nil {
		return parseRelative(match[1], match[2])
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return model.Datetime{}, fmt.Errorf("could not parse due date %q", input)
	}
	return model.FromTime(result.Time), nil
}

// parseRelative converts "+N<unit>" into now plus that duration.
func parseRelative(numStr, unit string) (model.Datetime, error) {
	num, _ := strconv.Atoi(numStr)
	if num <= 0 {
		return model.Datetime{}, fmt.Errorf("invalid duration: must be positive")
	}

	var d time.Duration
	switch unit {
	case "m":
		d = time.Duration(num) * time.Minute
	case "h":
		d = time.Duration(num) * time.Hour
	case "d":
		d = time.Duration(num) * 24 * time.Hour
	case "w":
		d = time.Duration(num) * 7 * 24 * time.Hour
	default:
		return model.Datetime{}, fmt.Errorf("invalid time unit: %s", unit)
	}

	return model.FromTime(time.Now().Add(d)), nil
}
