package audit

import "fmt"

// Per-category deduction caps. Each cap applies before summation so no single
// category can drive the score negative on its own.
const (
	spellingPenalty = 5
	spellingCap     = 30

	forbiddenPenalty = 15
	forbiddenCap     = 45

	companyPenalty = 8
	companyCap     = 24

	dynamicPenalty = 5
	dynamicCap     = 25

	gradeAThreshold = 85
	gradeBThreshold = 65
)

// Score computes the deterministic quality score from the four raw counts.
// The reason string itemizes the counts (not the deductions) in fixed order so
// the caller can audit which category dominated.
func Score(spelling, forbidden, company, dynamic int) ScoreResult {
	s := 100
	s -= min(spelling*spellingPenalty, spellingCap)
	s -= min(forbidden*forbiddenPenalty, forbiddenCap)
	s -= min(company*companyPenalty, companyCap)
	s -= min(dynamic*dynamicPenalty, dynamicCap)
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}

	grade := "C"
	switch {
	case s >= gradeAThreshold:
		grade = "A"
	case s >= gradeBThreshold:
		grade = "B"
	}

	reason := fmt.Sprintf(
		"spelling issues: %d | forbidden phrases: %d | missing company info: %d | unmet requirements: %d",
		spelling, forbidden, company, dynamic,
	)
	return ScoreResult{Score: s, Grade: grade, Reason: reason}
}
