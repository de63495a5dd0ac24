package audit

import (
	"fmt"
	"sort"
	"strings"
)

// maxMatchesPerRule bounds how many findings one forbidden rule can produce.
// regexp already advances past empty matches, this is a belt on top of it.
const maxMatchesPerRule = 200

// EvaluateForbidden scans text for every rule registered under channel and
// returns one finding per non-overlapping occurrence. An unknown channel has
// no rules and yields no findings.
func (rs *RuleSet) EvaluateForbidden(text, channel string) []Finding {
	findings := []Finding{}
	if rs == nil || text == "" {
		return findings
	}
	for _, rule := range rs.Forbidden[channel] {
		if rule.re == nil {
			continue
		}
		for _, matched := range rule.re.FindAllString(text, maxMatchesPerRule) {
			findings = append(findings, Finding{
				Category:   CategoryForbidden,
				Rule:       rule.Name,
				Matched:    matched,
				Message:    fmt.Sprintf("forbidden phrase %q", matched),
				Reason:     rule.Reason,
				Suggestion: rule.Suggestion,
			})
		}
	}
	return findings
}

// EvaluateRequiredFacts checks each enabled toggle against the whole text and
// emits at most one finding per absent fact. Toggles without a rule are ignored.
func (rs *RuleSet) EvaluateRequiredFacts(text string, toggles map[string]bool) []Finding {
	findings := []Finding{}
	if rs == nil || text == "" {
		return findings
	}
	for toggle, enabled := range toggles {
		if !enabled {
			continue
		}
		rule, ok := rs.RequiredFacts[toggle]
		if !ok || rule.re == nil {
			continue
		}
		if rule.re.MatchString(text) {
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryCompanyInfo,
			Rule:     toggle,
			Message:  rule.Message,
		})
	}
	// map iteration order is random; keep output reproducible
	sort.Slice(findings, func(i, j int) bool { return findings[i].Rule < findings[j].Rule })
	return findings
}

// EvaluateAdHoc treats each non-empty line of the caller-supplied requirement
// block as a case-insensitive substring check against the text. Leading bullet
// markers are stripped so pasted checklists work as-is.
func EvaluateAdHoc(text, requirements string) []Finding {
	findings := []Finding{}
	if text == "" {
		return findings
	}
	lower := strings.ToLower(text)
	for _, line := range strings.Split(requirements, "\n") {
		line = trimBullet(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(line)) {
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryRequirement,
			Rule:     "ad-hoc",
			Message:  fmt.Sprintf("requirement not met: %s", line),
		})
	}
	return findings
}

func trimBullet(line string) string {
	for _, marker := range []string{"- ", "* ", "+ ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}
	// numbered lists: "1. text" / "2) text"
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if (c == '.' || c == ')') && i > 0 && i+1 < len(line) && line[i+1] == ' ' {
			return strings.TrimSpace(line[i+2:])
		}
		break
	}
	return line
}
