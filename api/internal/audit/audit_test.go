package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEndToEnd(t *testing.T) {
	rs := testRules(t)

	// the corrected text contains one forbidden occurrence and lacks the brand
	rec := map[string]any{
		"corrected_text": "Sign up now for guaranteed results in chess!",
		"rewrite_text":   "Come learn chess with us — results included!",
		"spelling_issues": []any{
			map[string]any{"original": "sine up", "correct": "sign up"},
			map[string]any{"original": "ches", "correct": "chess"},
		},
	}

	report := Run(rs, rec, "original submission", Input{
		Channel: "facebook",
		Toggles: map[string]bool{"brand": true},
	})

	require.Len(t, report.ForbiddenFindings, 1)
	require.Len(t, report.CompanyFindings, 1)
	assert.Empty(t, report.RequirementFindings)

	// 100 - min(2*5,30) - min(1*15,45) - min(1*8,24) - 0 = 67
	assert.Equal(t, 67, report.Score)
	assert.Equal(t, "B", report.Grade)
	assert.Equal(t, "spelling issues: 2 | forbidden phrases: 1 | missing company info: 1 | unmet requirements: 0", report.Reason)
}

func TestRunDegradedPath(t *testing.T) {
	rs := testRules(t)

	// failed generation or malformed response -> empty record
	report := Run(rs, map[string]any{}, "the original copy, the best one", Input{
		Channel:      "facebook",
		Requirements: "- mention the hotline",
		Toggles:      map[string]bool{"brand": true},
	})

	// the user's text is echoed back, never lost
	assert.Equal(t, "the original copy, the best one", report.CorrectedText)
	assert.Equal(t, "the original copy, the best one", report.RewriteText)
	assert.Empty(t, report.SpellingIssues)

	// rule findings still reflect the measurable categories
	require.Len(t, report.ForbiddenFindings, 1) // "the best"
	assert.Equal(t, "superlative", report.ForbiddenFindings[0].Rule)
	assert.Len(t, report.CompanyFindings, 1)
	assert.Len(t, report.RequirementFindings, 1)

	// 100 - 0 - 15 - 8 - 5
	assert.Equal(t, 72, report.Score)
	assert.Equal(t, "B", report.Grade)
}

func TestRunNilRecordAndNilRules(t *testing.T) {
	report := Run(nil, nil, "hello", Input{Channel: "facebook"})
	assert.Equal(t, "hello", report.CorrectedText)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, "A", report.Grade)
	assert.NotNil(t, report.ForbiddenFindings)
	assert.NotNil(t, report.CompanyFindings)
	assert.NotNil(t, report.RequirementFindings)
}

func TestReportWireShapeIsStable(t *testing.T) {
	rs := testRules(t)
	report := Run(rs, map[string]any{}, "text", Input{Channel: "facebook"})

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{
		"corrected_text", "rewrite_text", "spelling_issues", "suggestions",
		"hashtags", "design_feedback", "plain_text",
		"forbidden_findings", "company_findings", "requirement_findings",
		"score", "grade", "reason",
	} {
		_, ok := m[key]
		assert.True(t, ok, "missing field %s", key)
	}
	// list fields serialize as [], not null
	assert.NotNil(t, m["spelling_issues"])
	assert.NotNil(t, m["forbidden_findings"])
}
