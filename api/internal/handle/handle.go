package handle

import (
	"encoding/json"
	"net/http"

	"ad-checker/api/internal/audit"
	"ad-checker/api/internal/llm"
)

type Handle struct {
	eng   llm.Engine
	rules *audit.RuleSet
}

func New(eng llm.Engine, rules *audit.RuleSet) *Handle {
	return &Handle{
		eng:   eng,
		rules: rules,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
