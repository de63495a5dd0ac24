package audit

// FindingCategory tells the scorer which deduction bucket a finding belongs to.
type FindingCategory string

const (
	CategoryForbidden   FindingCategory = "forbidden_phrase"
	CategoryCompanyInfo FindingCategory = "missing_company_info"
	CategoryRequirement FindingCategory = "unmet_requirement"
)

// Finding is one fired rule instance.
type Finding struct {
	Category   FindingCategory `json:"category"`
	Rule       string          `json:"rule"`
	Matched    string          `json:"matched,omitempty"`
	Message    string          `json:"message"`
	Reason     string          `json:"reason,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// SpellingIssue is one correction reported by the model.
type SpellingIssue struct {
	Original string `json:"original"`
	Correct  string `json:"correct"`
	Reason   string `json:"reason,omitempty"`
}

// ContentResult is the canonical shape of a model response after normalization.
// Every field is populated: list fields are empty slices rather than nil so the
// serialized form never contains null.
type ContentResult struct {
	CorrectedText  string          `json:"corrected_text"`
	RewriteText    string          `json:"rewrite_text"`
	SpellingIssues []SpellingIssue `json:"spelling_issues"`
	Suggestions    []string        `json:"suggestions"`
	Hashtags       []string        `json:"hashtags"`
	DesignFeedback []string        `json:"design_feedback"`
	PlainText      string          `json:"plain_text"`
}

// ScoreResult is recomputed per request; model-reported scores are ignored.
type ScoreResult struct {
	Score  int    `json:"score"`
	Grade  string `json:"grade"`
	Reason string `json:"reason"`
}

// Report is the outward contract: normalized content, the three finding lists
// and the computed score. Field names are identical for text and image mode.
type Report struct {
	ContentResult
	ForbiddenFindings   []Finding `json:"forbidden_findings"`
	CompanyFindings     []Finding `json:"company_findings"`
	RequirementFindings []Finding `json:"requirement_findings"`
	ScoreResult
}
