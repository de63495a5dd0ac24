package audit

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ForbiddenRule is a channel-scoped phrase check. Pattern is a regexp matched
// case-insensitively; a single rule may fire once per occurrence.
type ForbiddenRule struct {
	Name       string `yaml:"name"`
	Pattern    string `yaml:"pattern"`
	Reason     string `yaml:"reason"`
	Suggestion string `yaml:"suggestion"`
	Weight     int    `yaml:"weight"`

	re *regexp.Regexp
}

// RequiredFactRule checks that a brand fact appears somewhere in the text.
// It only runs when the caller enabled the matching toggle, and fires at most once.
type RequiredFactRule struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`

	re *regexp.Regexp
}

// RuleSet holds the compliance rule tables. Rules are data: the set is passed
// into the matcher explicitly, keyed by channel and toggle name, so deployments
// can swap rule files without touching the engine.
type RuleSet struct {
	Forbidden     map[string][]ForbiddenRule  `yaml:"forbidden"`
	RequiredFacts map[string]RequiredFactRule `yaml:"required_facts"`
}

// compile builds the case-insensitive matchers for every rule.
func (rs *RuleSet) compile() error {
	for ch, rules := range rs.Forbidden {
		for i := range rules {
			re, err := regexp.Compile("(?i)" + rules[i].Pattern)
			if err != nil {
				return fmt.Errorf("forbidden rule %q (channel %s): %w", rules[i].Name, ch, err)
			}
			rules[i].re = re
		}
		rs.Forbidden[ch] = rules
	}
	for toggle, rule := range rs.RequiredFacts {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return fmt.Errorf("required-fact rule %q: %w", toggle, err)
		}
		rule.re = re
		rs.RequiredFacts[toggle] = rule
	}
	return nil
}

// LoadRuleSet reads a YAML rule file. An empty path means "use the defaults".
func LoadRuleSet(path string) (*RuleSet, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRuleSet(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules file: %w", err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	if rs.Forbidden == nil {
		rs.Forbidden = map[string][]ForbiddenRule{}
	}
	if rs.RequiredFacts == nil {
		rs.RequiredFacts = map[string]RequiredFactRule{}
	}
	if err := rs.compile(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DefaultRuleSet returns the built-in tables for the children's chess-and-art
// center brand. Channels: facebook, zalo. Toggles: brand, branch, contact,
// slogan, services.
func DefaultRuleSet() *RuleSet {
	rs := &RuleSet{
		Forbidden: map[string][]ForbiddenRule{
			"facebook": {
				{
					Name:       "guarantee-claim",
					Pattern:    `guaranteed?\s+(results?|success|improvement)`,
					Reason:     "ads must not promise learning outcomes",
					Suggestion: "describe the curriculum instead of promising results",
					Weight:     3,
				},
				{
					Name:       "absolute-claim",
					Pattern:    `(100%|number\s*(one|1)|the\s+best|no\.?\s*1)`,
					Reason:     "absolute superiority claims are not verifiable",
					Suggestion: "use concrete facts (years teaching, class size) instead",
					Weight:     2,
				},
				{
					Name:       "pressure-sales",
					Pattern:    `(last\s+chance|only\s+today|hurry\s+up|slots?\s+running\s+out)`,
					Reason:     "pressure wording is flagged on parent-facing surfaces",
					Suggestion: "state the enrollment deadline plainly",
					Weight:     1,
				},
			},
			"zalo": {
				{
					Name:       "guarantee-claim",
					Pattern:    `guaranteed?\s+(results?|success|improvement)`,
					Reason:     "ads must not promise learning outcomes",
					Suggestion: "describe the curriculum instead of promising results",
					Weight:     3,
				},
				{
					Name:       "prize-bait",
					Pattern:    `(free\s+gift|lucky\s+draw|win\s+a\s+prize)`,
					Reason:     "prize wording triggers platform review on Zalo",
					Suggestion: "mention the trial lesson without prize framing",
					Weight:     2,
				},
			},
		},
		RequiredFacts: map[string]RequiredFactRule{
			"brand": {
				Pattern: `little\s+grandmaster`,
				Message: "brand name is missing",
			},
			"branch": {
				Pattern: `(branch|campus|center\s+at)`,
				Message: "branch or campus location is missing",
			},
			"contact": {
				Pattern: `(hotline|zalo|phone|call)\s*:?\s*[\d .()+-]{7,}`,
				Message: "contact line (hotline/phone) is missing",
			},
			"slogan": {
				Pattern: `every\s+child\s+thinks\s+ahead`,
				Message: "brand slogan is missing",
			},
			"services": {
				Pattern: `(chess|drawing|art)\s+(class|club|course)`,
				Message: "service description (chess/art classes) is missing",
			},
		},
	}
	if err := rs.compile(); err != nil {
		// patterns above are constants; a compile failure is a programming error
		panic(err)
	}
	return rs
}
