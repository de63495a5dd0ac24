// Package audit is the deterministic compliance-and-scoring engine that wraps
// the model call: a rule-based content auditor, a tolerant extractor and
// normalizer for the model's free-form output, and a scoring function that
// combines both into a stable grade. Everything here is pure: no I/O, no
// shared state, safe to run per request without coordination.
package audit

// Input carries the caller-controlled audit parameters for one request.
type Input struct {
	Channel      string
	Requirements string
	Toggles      map[string]bool
}

// Run is the canonical pipeline tail: normalize the extracted record, evaluate
// the rule tables against the normalized corrected text, score, and assemble
// the outward report. A nil or empty record (failed generation, malformed
// response) still yields a complete report built from fallbackText.
func Run(rules *RuleSet, rec map[string]any, fallbackText string, in Input) Report {
	content := Normalize(rec, fallbackText)

	forbidden := rules.EvaluateForbidden(content.CorrectedText, in.Channel)
	company := rules.EvaluateRequiredFacts(content.CorrectedText, in.Toggles)
	dynamic := EvaluateAdHoc(content.CorrectedText, in.Requirements)

	score := Score(len(content.SpellingIssues), len(forbidden), len(company), len(dynamic))

	return Report{
		ContentResult:       content,
		ForbiddenFindings:   forbidden,
		CompanyFindings:     company,
		RequirementFindings: dynamic,
		ScoreResult:         score,
	}
}
