package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseFunc converts raw text into a typed value or rejects it. Parsers
// are pure: they never mutate state and never see partial keystrokes,
// only whole buffers at submit time.
type ParseFunc[T any] func(raw string) (T, error)

// ParseNonEmpty accepts any string with non-whitespace content, trimmed.
func ParseNonEmpty(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("value must not be empty")
	}
	return trimmed, nil
}

// ParseIdentifier accepts base58-looking identifiers as used for
// identity and contract IDs. Length and alphabet are checked here;
// cryptographic validity is the backend's concern.
func ParseIdentifier(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("identifier must not be empty")
	}
	for _, r := range trimmed {
		if !strings.ContainsRune("123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz", r) {
			return "", fmt.Errorf("identifier contains invalid character %q", r)
		}
	}
	return trimmed, nil
}

// ParseCredits accepts a positive credit amount.
func ParseCredits(raw string) (uint64, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid credit amount", raw)
	}
	if n == 0 {
		return 0, fmt.Errorf("credit amount must be greater than zero")
	}
	return n, nil
}

// ParsePositiveInt accepts a positive decimal integer.
func ParsePositiveInt(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid number", raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be greater than zero")
	}
	return n, nil
}

// ParseSeconds accepts either a bare number of seconds or a Go duration
// string ("90", "2m", "1h30m") and returns whole seconds.
func ParseSeconds(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be greater than zero")
		}
		return n, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid duration", raw)
	}
	if d < time.Second {
		return 0, fmt.Errorf("duration must be at least one second")
	}
	return int(d / time.Second), nil
}

// ParseJSONish accepts a non-empty string that starts a JSON object or
// array. Full schema validation happens on the node; this only catches
// the obvious case of submitting prose where a document body belongs.
func ParseJSONish(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("document body must not be empty")
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return "", fmt.Errorf("document body must be a JSON object or array")
	}
	return trimmed, nil
}
