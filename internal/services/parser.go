package services

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"sdgeval/proposal-evaluator/internal/models"
)

// ParsedScore is one SDG entry parsed from the model's reply. The score
// stays a string; coercion happens at chart-build time.
type ParsedScore struct {
	Score       string
	Explanation string
}

var digitRun = regexp.MustCompile(`\d+`)

// ParseEvaluationText turns the plain-text reply into a mapping keyed by
// SDG number. Expected line shape:
//
//	SDG <n>: <score> - <explanation>
//
// Malformed lines are dropped and logged, never fatal; later duplicate SDG
// numbers overwrite earlier ones. The mapping may hold anywhere from 0 to
// 17 entries, completeness is not enforced here.
func ParseEvaluationText(text string) map[int]ParsedScore {
	results := make(map[int]ParsedScore)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "SDG") {
			continue
		}

		label, remainder, found := strings.Cut(line, ":")
		if !found {
			log.Printf("⚠️  Could not parse line: %s\n", line)
			continue
		}

		digits := digitRun.FindString(label)
		if digits == "" {
			log.Printf("⚠️  No SDG number in line: %s\n", line)
			continue
		}
		sdgNumber, _ := strconv.Atoi(digits)

		score, explanation, found := strings.Cut(remainder, " - ")
		if !found {
			log.Printf("⚠️  Could not parse line: %s\n", line)
			continue
		}

		results[sdgNumber] = ParsedScore{
			Score:       strings.TrimSpace(score),
			Explanation: strings.TrimSpace(explanation),
		}
	}

	return results
}

// ScoreValue coerces a free-form score string to a chartable integer: the
// first run of digits, clamped to [0,10]. Returns false when the string
// holds no digits at all.
func ScoreValue(score string) (int, bool) {
	digits := digitRun.FindString(score)
	if digits == "" {
		return 0, false
	}

	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if v > 10 {
		v = 10
	}
	return v, true
}

// ChartRows builds the bar-chart dataset from stored score rows: x = SDG
// number, y = coerced score. Rows whose score cannot be coerced are left
// out of the chart but still appear in the per-SDG text lines. Input is
// expected sorted by SDG number.
func ChartRows(scores []models.SdgScore) []models.ChartRow {
	rows := make([]models.ChartRow, 0, len(scores))
	for _, s := range scores {
		v, ok := ScoreValue(s.Score)
		if !ok {
			log.Printf("⚠️  Non-numeric score for SDG %d: %q\n", s.SdgNumber, s.Score)
			continue
		}
		rows = append(rows, models.ChartRow{SdgNumber: s.SdgNumber, Score: v})
	}
	return rows
}
