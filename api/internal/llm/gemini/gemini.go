package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ad-checker/api/internal/llm"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

const systemPrompt = `You are an editor for a children's chess-and-art education center
reviewing marketing copy written for parents.

TASKS:
1. Fix every spelling and grammar mistake.
2. List each fix (wrong fragment -> corrected fragment, with a short reason).
3. Rewrite the copy in a friendly, parent-facing tone. Do not change its meaning.
4. Suggest 5-12 fitting hashtags.
5. Give general editorial suggestions as short bullet strings.
6. If the input is a PHOTO of a poster: first transcribe all visible text
   (plain_text), then do tasks 1-5 on that transcription, and add short notes
   about the poster's visual design (design_feedback). For plain text input
   leave plain_text and design_feedback empty.

Return ONLY a JSON object with exactly these fields, long or short input alike:
{
  "corrected_text": "...",
  "spelling_issues": [{"original": "...", "correct": "...", "reason": "..."}],
  "suggestions": ["..."],
  "hashtags": ["#..."],
  "rewrite_text": "...",
  "plain_text": "...",
  "design_feedback": ["..."]
}
Any text outside the JSON is an error.`

// Check sends the copy (or poster photo) to Gemini and returns the raw model
// text. JSON recovery happens downstream; this layer only retries transient
// failures.
func (e *Engine) Check(ctx context.Context, in llm.CheckInput) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	var user strings.Builder
	user.WriteString("Review this marketing copy and answer with the JSON object only.")
	if req := strings.TrimSpace(in.Requirements); req != "" {
		user.WriteString("\nThe author additionally requires:\n")
		user.WriteString(req)
	}

	parts := []genai.Part{genai.Text(user.String())}
	if len(in.Image) > 0 {
		parts = append(parts, &genai.Blob{MIMEType: in.MIME, Data: in.Image})
	} else {
		parts = append(parts, genai.Text("ORIGINAL COPY:\n\"\"\"\n"+in.Text+"\n\"\"\""))
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if strings.TrimSpace(txt) == "" {
			return "", fmt.Errorf("gemini check: empty response")
		}
		return txt, nil
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
