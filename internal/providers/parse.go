package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codecritic/codecritic/internal/review"
)

// ParseResult parses a model's text response into the canonical result
// shape. A leading/trailing markdown code fence is stripped first; the
// remainder must be a JSON object that passes strict shape validation.
// Validation failure is reported identically to a parse failure.
func ParseResult(content string) (*review.Result, error) {
	content = StripFences(content)

	var res review.Result
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}
	if err := review.Validate(&res); err != nil {
		return nil, fmt.Errorf("response validation failed: %w", err)
	}
	return &res, nil
}

// StripFences removes a wrapping markdown code fence (```json ... ```) if
// present and trims surrounding whitespace.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}
