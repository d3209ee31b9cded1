package review

import (
	"strings"
	"testing"
)

func validResult() *Result {
	score := MetricScore{Grade: "B", Score: 82}
	return &Result{
		Metrics: Metrics{Overall: score, Maintainability: score, Performance: score, Security: score},
		Comments: []Comment{
			{Line: 1, Text: "something", Type: CommentInfo},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validResult()); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) = nil, want error")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Result)
		wantMsg string
	}{
		{"missing grade", func(r *Result) { r.Metrics.Security.Grade = "" }, "missing grade"},
		{"negative score", func(r *Result) { r.Metrics.Overall.Score = -5 }, "out of range"},
		{"score over 100", func(r *Result) { r.Metrics.Performance.Score = 101 }, "out of range"},
		{"zero line", func(r *Result) { r.Comments[0].Line = 0 }, "not positive"},
		{"empty text", func(r *Result) { r.Comments[0].Text = "" }, "empty text"},
		{"unknown comment type", func(r *Result) { r.Comments[0].Type = "fatal" }, "unknown type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(r)
			err := Validate(r)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidate_TruncatesKeyImprovements(t *testing.T) {
	r := validResult()
	r.KeyImprovements = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if err := Validate(r); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if len(r.KeyImprovements) != 6 {
		t.Errorf("KeyImprovements length = %d, want 6", len(r.KeyImprovements))
	}
}

func TestCountComments(t *testing.T) {
	comments := []Comment{
		{Type: CommentError}, {Type: CommentError},
		{Type: CommentWarning},
		{Type: CommentSuggestion}, {Type: CommentInfo},
	}
	critical, warnings, info := CountComments(comments)
	if critical != 2 || warnings != 1 || info != 2 {
		t.Errorf("CountComments = (%d, %d, %d), want (2, 1, 2)", critical, warnings, info)
	}
}

func TestValidReviewType(t *testing.T) {
	for _, rt := range []ReviewType{ReviewComprehensive, ReviewSyntaxOnly, ReviewSecurity, ReviewPerformance} {
		if !ValidReviewType(rt) {
			t.Errorf("ValidReviewType(%q) = false, want true", rt)
		}
	}
	if ValidReviewType("full") {
		t.Error(`ValidReviewType("full") = true, want false`)
	}
}
