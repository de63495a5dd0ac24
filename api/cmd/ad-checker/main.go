package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"ad-checker/api/internal/audit"
	"ad-checker/api/internal/config"
	handle "ad-checker/api/internal/handle"
	"ad-checker/api/internal/llm/gemini"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	rules, err := audit.LoadRuleSet(cfg.RulesFile)
	if err != nil {
		log.Fatalf("rules: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	eng := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	h := handle.New(eng, rules)

	mux.HandleFunc("/api/check", h.Check)
	mux.HandleFunc("/api/check-image", h.CheckImage)

	addr := ":" + cfg.Port
	log.Printf("ad-checker listening on %s (model %s)", addr, eng.GetModel())
	log.Fatal(http.ListenAndServe(addr, mux))
}
