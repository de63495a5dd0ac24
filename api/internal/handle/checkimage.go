package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ad-checker/api/internal/audit"
	"ad-checker/api/internal/llm"
	"ad-checker/api/internal/util"
)

// --- CHECK (image mode) ------------------------------------------------------

type checkImageRequest struct {
	// Image is base64, either bare or as a data:URI.
	Image        string          `json:"image"`
	Channel      string          `json:"channel"`
	Requirements string          `json:"requirements"`
	Toggles      map[string]bool `json:"toggles"`
}

func (h *Handle) CheckImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req checkImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		http.Error(w, "image is required", http.StatusBadRequest)
		return
	}
	img, mimeHint, err := util.DecodeBase64MaybeDataURL(req.Image)
	if err != nil {
		http.Error(w, "bad image: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 70*time.Second)
	defer cancel()

	rec := h.generate(ctx, llm.CheckInput{
		Image:        img,
		MIME:         util.PickMIME("", mimeHint, img),
		Requirements: req.Requirements,
	})

	// no original text exists in image mode; the fallback is empty and the
	// matchers run over whatever corrected text OCR recovered
	report := audit.Run(h.rules, rec, "", audit.Input{
		Channel:      req.Channel,
		Requirements: req.Requirements,
		Toggles:      req.Toggles,
	})
	writeJSON(w, http.StatusOK, report)
}
