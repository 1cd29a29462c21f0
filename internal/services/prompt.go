package services

import (
	"fmt"
	"strings"
)

const SdgCount = 17

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSDGEvaluationPrompt creates the fixed scoring prompt: score all 17
// SDGs 0-10 with a short justification in the target language, the proposal
// text verbatim, and the expected output format repeated for SDG 1 through
// 17. referenceContext may be empty.
func (pb *PromptBuilder) BuildSDGEvaluationPrompt(proposalText, language, referenceContext string) string {
	var formatLines strings.Builder
	for i := 1; i <= SdgCount; i++ {
		formatLines.WriteString(fmt.Sprintf("SDG %d: [Score] - [Explanation]\n", i))
	}

	contextSection := ""
	if referenceContext != "" {
		contextSection = fmt.Sprintf(`
Reference material on the SDG targets:
%s
`, referenceContext)
	}

	return fmt.Sprintf(`You are an expert in evaluating project proposals against the United Nations Sustainable Development Goals (SDGs).
Your task is to analyze the provided project proposal text and assign a score from 0 to 10 for each of the 17 SDGs.
Also provide a short justification for the score in %s language.
%s
Here is the project proposal text:
%s

Provide your analysis in the following format:
%s
Ensure your response follows the specified format strictly.`,
		language, contextSection, proposalText, formatLines.String())
}

// FormatReferenceContext renders retrieved SDG reference snippets for
// inclusion in the prompt.
func FormatReferenceContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Reference %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
