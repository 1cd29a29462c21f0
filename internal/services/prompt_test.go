package services

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildSDGEvaluationPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildSDGEvaluationPrompt("Solar pumps for rural irrigation.", "Thai", "")

	if !strings.Contains(prompt, "Solar pumps for rural irrigation.") {
		t.Error("prompt does not embed the proposal text")
	}
	if !strings.Contains(prompt, "justification for the score in Thai language") {
		t.Error("prompt does not name the target language")
	}
	for i := 1; i <= 17; i++ {
		line := fmt.Sprintf("SDG %d: [Score] - [Explanation]", i)
		if !strings.Contains(prompt, line) {
			t.Errorf("prompt missing format line %q", line)
		}
	}
	if strings.Contains(prompt, "Reference material") {
		t.Error("prompt should not have a reference section without context")
	}
}

func TestBuildSDGEvaluationPrompt_WithReferenceContext(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildSDGEvaluationPrompt("Some proposal.", "English", "SDG 6 covers clean water and sanitation.")

	if !strings.Contains(prompt, "SDG 6 covers clean water and sanitation.") {
		t.Error("prompt does not include the reference context")
	}
}

func TestFormatReferenceContext(t *testing.T) {
	if got := FormatReferenceContext(nil); got != "" {
		t.Errorf("empty results should format to empty string, got %q", got)
	}

	got := FormatReferenceContext([]SearchResult{
		{Score: 0.91, Text: "  Goal 1: No Poverty  "},
		{Score: 0.75, Text: "Goal 13: Climate Action"},
	})

	if !strings.Contains(got, "Reference 1") || !strings.Contains(got, "Reference 2") {
		t.Errorf("missing reference headers: %q", got)
	}
	if !strings.Contains(got, "Goal 1: No Poverty") {
		t.Error("snippet text not trimmed and included")
	}
}
