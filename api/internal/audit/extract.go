package audit

import (
	"encoding/json"
	"strings"
)

// MalformedResponseError means no JSON object could be located in the model
// output. Raw carries the original text so the caller can log it.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return "no JSON object found in model response"
}

// ExtractObject recovers a JSON object from raw model output. Models are
// inconsistent about fencing and about adding commentary around the JSON, so
// three strategies are tried in order:
//
//  1. the content of the first fenced code block,
//  2. the window between the first '{' and the last '}',
//  3. the raw text verbatim.
//
// Only a JSON object counts as success; arrays and scalars do not. When every
// strategy fails the error is a *MalformedResponseError, never a guessed object.
func ExtractObject(raw string) (map[string]any, error) {
	for _, candidate := range [...]string{fencedBlock(raw), braceWindow(raw), strings.TrimSpace(raw)} {
		if candidate == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(candidate), &m); err == nil && m != nil {
			return m, nil
		}
	}
	return nil, &MalformedResponseError{Raw: raw}
}

// fencedBlock returns the content of the first ```-fenced block, with an
// optional language tag on the opening line stripped.
func fencedBlock(raw string) string {
	start := strings.Index(raw, "```")
	if start < 0 {
		return ""
	}
	rest := raw[start+3:]
	// skip the language annotation ("json", "JSON", ...) up to the line break
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		first := strings.TrimSpace(rest[:nl])
		if first == "" || isLangTag(first) {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}

func isLangTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// braceWindow returns the substring between the first '{' and the last '}',
// inclusive. This recovers JSON padded with explanatory prose.
func braceWindow(raw string) string {
	open := strings.IndexByte(raw, '{')
	last := strings.LastIndexByte(raw, '}')
	if open < 0 || last <= open {
		return ""
	}
	return raw[open : last+1]
}
