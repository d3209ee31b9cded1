package providers

import (
	"strings"
	"testing"
)

func TestParseResult_PlainJSON(t *testing.T) {
	res, err := ParseResult(validResultJSON)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if res.Metrics.Security.Grade != "B" || res.Metrics.Security.Score != 82 {
		t.Errorf("Security = %+v, want B/82", res.Metrics.Security)
	}
}

func TestParseResult_FencedJSON(t *testing.T) {
	for _, fence := range []string{"```json", "```"} {
		res, err := ParseResult(fence + "\n" + validResultJSON + "\n```")
		if err != nil {
			t.Fatalf("fence %q: ParseResult: %v", fence, err)
		}
		if res.Metrics.Overall.Grade != "B+" {
			t.Errorf("fence %q: Overall grade = %q", fence, res.Metrics.Overall.Grade)
		}
	}
}

func TestParseResult_Prose(t *testing.T) {
	if _, err := ParseResult("Here is my review of your code."); err == nil {
		t.Error("ParseResult(prose) = nil error, want error")
	}
}

func TestParseResult_ValidJSONFailingValidation(t *testing.T) {
	// Parses fine, but the overall grade is missing.
	content := `{"metrics": {"overall": {"score": 90}}}`
	_, err := ParseResult(content)
	if err == nil {
		t.Fatal("ParseResult = nil error, want validation error")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error = %q, want validation failure", err)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
		{"fence-like single line", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
