package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTotality(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
	}{
		{"nil record", nil},
		{"empty record", map[string]any{}},
		{"wrong-typed string field", map[string]any{"corrected_text": 123}},
		{"wrong-typed list field", map[string]any{"spelling_issues": "oops"}},
		{"scalar where list expected", map[string]any{"hashtags": "#one"}},
		{"null fields", map[string]any{"corrected_text": nil, "suggestions": nil}},
		{"nested garbage", map[string]any{"spelling_issues": []any{1, "x", nil, []any{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rec, "original text")

			// every string field is a string, every list field a non-nil list
			assert.Equal(t, "original text", got.CorrectedText)
			assert.Equal(t, "original text", got.RewriteText)
			assert.NotNil(t, got.SpellingIssues)
			assert.NotNil(t, got.Suggestions)
			assert.NotNil(t, got.Hashtags)
			assert.NotNil(t, got.DesignFeedback)
			assert.Empty(t, got.SpellingIssues)
			assert.Empty(t, got.Hashtags)
		})
	}
}

func TestNormalizeRewriteCascade(t *testing.T) {
	// the rewrite falls back to the corrected text, never to the raw original
	got := Normalize(map[string]any{"corrected_text": "fixed copy"}, "raw copy")
	assert.Equal(t, "fixed copy", got.CorrectedText)
	assert.Equal(t, "fixed copy", got.RewriteText)
}

func TestNormalizeRecoversWellFormedFields(t *testing.T) {
	rec := map[string]any{
		"corrected_text": "Chess classes for kids.",
		"rewrite_text":   "Come play chess with us!",
		"spelling_issues": []any{
			map[string]any{"original": "ches", "correct": "chess", "reason": "typo"},
			"not an issue record",
			map[string]any{"note": "no fragments at all"},
		},
		"suggestions":     []any{"shorter headline", 42},
		"hashtags":        []any{"#chess", "#kids"},
		"plain_text":      "POSTER TEXT",
		"design_feedback": []any{"logo too small"},
		// model-reported scores are ignored by design
		"score": float64(12),
		"grade": "F",
	}
	got := Normalize(rec, "fallback")

	assert.Equal(t, "Chess classes for kids.", got.CorrectedText)
	assert.Equal(t, "Come play chess with us!", got.RewriteText)
	require.Len(t, got.SpellingIssues, 1)
	assert.Equal(t, SpellingIssue{Original: "ches", Correct: "chess", Reason: "typo"}, got.SpellingIssues[0])
	assert.Equal(t, []string{"shorter headline"}, got.Suggestions)
	assert.Equal(t, []string{"#chess", "#kids"}, got.Hashtags)
	assert.Equal(t, "POSTER TEXT", got.PlainText)
	assert.Equal(t, []string{"logo too small"}, got.DesignFeedback)
}

func TestNormalizeIdempotence(t *testing.T) {
	want := ContentResult{
		CorrectedText:  "corrected",
		RewriteText:    "rewritten",
		SpellingIssues: []SpellingIssue{{Original: "a", Correct: "b", Reason: "c"}},
		Suggestions:    []string{"s1", "s2"},
		Hashtags:       []string{"#h"},
		DesignFeedback: []string{},
		PlainText:      "",
	}

	// round-trip through the loose record representation
	data, err := json.Marshal(want)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))

	got := Normalize(rec, "unrelated fallback")
	assert.Equal(t, want, got)
}
