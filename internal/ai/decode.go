package ai

import (
	"encoding/json"
	"strings"

	hirereadyErrors "hireready/internal/errors"
)

// CleanResponse normalizes a raw model completion before JSON parsing.
// Models intermittently wrap JSON output in markdown code fences or a layer
// of quote characters even when told not to; all of that is stripped here so
// format drift stays contained in one place.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)

	// Trim a single layer of surrounding quotes
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if first == last && (first == '"' || first == '\'') {
			text = text[1 : len(text)-1]
		}
	}
	text = strings.TrimSpace(text)

	// Remove code fences if present
	if strings.HasPrefix(text, "```json") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
	} else if strings.HasPrefix(text, "```") {
		text = strings.ReplaceAll(text, "```", "")
	}

	return strings.TrimSpace(text)
}

// DecodeJSON cleans a raw completion and parses it into T. On malformed JSON
// it returns the zero value together with a decode error; callers treat the
// empty value as "no data" rather than failing hard. Syntactically valid JSON
// is accepted whatever its shape - unknown keys are dropped, missing keys
// stay at their zero values.
func DecodeJSON[T any](raw string) (T, error) {
	var output T
	cleaned := CleanResponse(raw)
	if err := json.Unmarshal([]byte(cleaned), &output); err != nil {
		var zero T
		return zero, hirereadyErrors.NewDecodeError(hirereadyErrors.ErrCodeDecodeFailed,
			"Failed to parse model response as JSON", err)
	}
	return output, nil
}
