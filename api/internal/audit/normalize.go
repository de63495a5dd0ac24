package audit

import "strings"

// Normalize maps a loose record (whatever the model sent, possibly nil) onto
// the canonical ContentResult. It is total: every field of the result is
// populated with a value of the right type, wrong-typed or missing fields fall
// back to the empty value, and CorrectedText falls back to the caller's
// original text so the user's content is never lost.
func Normalize(rec map[string]any, fallbackText string) ContentResult {
	out := ContentResult{
		CorrectedText:  stringField(rec, "corrected_text", fallbackText),
		SpellingIssues: spellingField(rec, "spelling_issues"),
		Suggestions:    stringListField(rec, "suggestions"),
		Hashtags:       stringListField(rec, "hashtags"),
		DesignFeedback: stringListField(rec, "design_feedback"),
		PlainText:      stringField(rec, "plain_text", ""),
	}
	// the rewrite prefers the corrected text over the unedited original
	out.RewriteText = stringField(rec, "rewrite_text", out.CorrectedText)
	return out
}

func stringField(rec map[string]any, key, fallback string) string {
	if s, ok := rec[key].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func stringListField(rec map[string]any, key string) []string {
	out := []string{}
	list, ok := rec[key].([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func spellingField(rec map[string]any, key string) []SpellingIssue {
	out := []SpellingIssue{}
	list, ok := rec[key].([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		issue := SpellingIssue{
			Original: stringField(m, "original", ""),
			Correct:  stringField(m, "correct", ""),
			Reason:   stringField(m, "reason", ""),
		}
		if issue.Original == "" && issue.Correct == "" {
			continue
		}
		out = append(out, issue)
	}
	return out
}
