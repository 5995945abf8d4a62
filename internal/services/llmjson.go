package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse reports that no usable JSON object could be recovered
// from a model response. Components treat it as a signal to run their
// deterministic fallback; it never crosses a component boundary.
var ErrMalformedResponse = errors.New("malformed model response")

// ExtractJSON recovers a JSON object from free-form model output. Strategies,
// in order: a fenced ```json code block, the first top-level {...} span, the
// whole response. Returns false when all three fail.
func ExtractJSON(text string) (string, bool) {
	if candidate, ok := fencedBlock(text); ok {
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	if candidate, ok := firstObjectSpan(text); ok {
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return trimmed, true
	}

	return "", false
}

// ParseObject extracts and unmarshals a JSON object into target.
func ParseObject(text string, target interface{}) error {
	candidate, ok := ExtractJSON(text)
	if !ok {
		return fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(candidate), target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

// fencedBlock returns the contents of the first ``` code block, skipping a
// leading language identifier line.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}

	rest := text[start+3:]
	rest = strings.TrimPrefix(rest, "json")

	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// firstObjectSpan returns the first balanced top-level {...} span, tracking
// string literals so braces inside values don't break the scan.
func firstObjectSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}

	return "", false
}
