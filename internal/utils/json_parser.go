package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when no JSON object can be recovered from model output
var ErrNoJSONObject = errors.New("no JSON object found")

var (
	fencedBlock   = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKey   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// ExtractJSONObject decodes the first JSON object found in language-model
// output into a generic map. It accepts:
//   - a bare object
//   - an object inside a markdown code fence
//   - an object surrounded by prose
//   - objects with trailing commas or unquoted keys
func ExtractJSONObject(input string) (map[string]interface{}, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "\ufeff")
	if input == "" {
		return nil, fmt.Errorf("empty input: %w", ErrNoJSONObject)
	}

	for _, candidate := range candidates(input) {
		var out map[string]interface{}
		if err := json.Unmarshal([]byte(candidate), &out); err == nil && out != nil {
			return out, nil
		}
		if err := json.Unmarshal([]byte(repair(candidate)), &out); err == nil && out != nil {
			return out, nil
		}
	}

	return nil, fmt.Errorf("%w in: %s", ErrNoJSONObject, truncateString(input, 100))
}

// candidates lists the substrings worth decoding, most likely first
func candidates(input string) []string {
	out := []string{input}
	if m := fencedBlock.FindStringSubmatch(input); len(m) > 1 {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if start := strings.Index(input, "{"); start >= 0 {
		if obj := balancedObject(input[start:]); obj != "" {
			out = append(out, obj)
		}
	}
	return out
}

// balancedObject returns the leading {...} of s, honouring string literals
func balancedObject(s string) string {
	depth := 0
	inString := false
	escape := false

	for i, ch := range s {
		switch {
		case escape:
			escape = false
		case ch == '\\' && inString:
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

func repair(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = unquotedKey.ReplaceAllString(s, `$1"$2"$3`)
	return controlChars.ReplaceAllString(s, "")
}

// truncateString truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
