package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/gradable-block-service/internal/i18n"
)

// ScoreBreakdown is the grade reported to the host: earned score and total
type ScoreBreakdown struct {
	Score *float64 `json:"score"`
	Total *float64 `json:"total"`
}

// GetScore computes points x weight. A nil weight yields a nil score and total.
func GetScore(points float64, weight *float64) ScoreBreakdown {
	if weight == nil {
		return ScoreBreakdown{}
	}
	score := points * *weight
	total := *weight
	return ScoreBreakdown{Score: &score, Total: &total}
}

// MaxScore is the block weight
func MaxScore(weight *float64) *float64 {
	if weight == nil {
		return nil
	}
	w := *weight
	return &w
}

// ScoreString renders "(earned/weight points)" for graded blocks and "" otherwise.
// The earned score always carries a decimal point; a whole weight prints without one.
func ScoreString(points float64, weight *float64, locale string) string {
	if weight == nil || *weight == 0 {
		return ""
	}
	return fmt.Sprintf("(%s/%s %s)",
		formatFloat(points**weight),
		strconv.FormatFloat(*weight, 'f', -1, 64),
		i18n.T(locale, i18n.PointsWord),
	)
}

// formatFloat prints the shortest representation, always keeping a decimal point
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
