package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-checker/api/internal/audit"
	"ad-checker/api/internal/llm"
)

// fakeEngine returns a canned response (or error) without network access.
type fakeEngine struct {
	raw  string
	err  error
	last llm.CheckInput
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-model" }
func (f *fakeEngine) Check(_ context.Context, in llm.CheckInput) (string, error) {
	f.last = in
	return f.raw, f.err
}

func newTestHandle(t *testing.T, eng llm.Engine) *Handle {
	t.Helper()
	return New(eng, audit.DefaultRuleSet())
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestCheckHappyPath(t *testing.T) {
	eng := &fakeEngine{
		raw: "```json\n" + `{"corrected_text":"Chess classes for kids.","rewrite_text":"Join our chess classes!","spelling_issues":[{"original":"ches","correct":"chess"}],"hashtags":["#chess"]}` + "\n```",
	}
	h := newTestHandle(t, eng)

	w := postJSON(t, h.Check, `{"text":"ches classes for kids","channel":"facebook"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep audit.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "Chess classes for kids.", rep.CorrectedText)
	assert.Equal(t, "Join our chess classes!", rep.RewriteText)
	assert.Equal(t, []string{"#chess"}, rep.Hashtags)
	assert.Equal(t, 95, rep.Score) // one spelling issue
	assert.Equal(t, "A", rep.Grade)

	assert.Equal(t, "ches classes for kids", eng.last.Text)
	assert.Empty(t, eng.last.Image)
}

func TestCheckRejectsInvalidInput(t *testing.T) {
	h := newTestHandle(t, &fakeEngine{})

	t.Run("GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		h.Check(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("empty text", func(t *testing.T) {
		w := postJSON(t, h.Check, `{"text":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("broken body", func(t *testing.T) {
		w := postJSON(t, h.Check, `{"text":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckDegradesWhenGenerationFails(t *testing.T) {
	h := newTestHandle(t, &fakeEngine{err: errors.New("quota exceeded")})

	w := postJSON(t, h.Check, `{"text":"our chess club is the best","channel":"facebook","toggles":{"brand":true}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep audit.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	// the original text is echoed back, findings still computed
	assert.Equal(t, "our chess club is the best", rep.CorrectedText)
	assert.Equal(t, "our chess club is the best", rep.RewriteText)
	assert.Len(t, rep.ForbiddenFindings, 1) // "the best"
	assert.Len(t, rep.CompanyFindings, 1)   // brand toggle enabled, brand absent
	assert.Equal(t, 77, rep.Score)          // 100 - 15 - 8
	assert.Equal(t, "B", rep.Grade)
}

func TestCheckDegradesOnMalformedResponse(t *testing.T) {
	h := newTestHandle(t, &fakeEngine{raw: "sorry, I cannot help with that"})

	w := postJSON(t, h.Check, `{"text":"plain harmless copy"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep audit.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "plain harmless copy", rep.CorrectedText)
	assert.Equal(t, 100, rep.Score)
}

func TestCheckImage(t *testing.T) {
	eng := &fakeEngine{
		raw: `{"corrected_text":"Poster copy.","plain_text":"POSTER COPY","design_feedback":["logo too small"]}`,
	}
	h := newTestHandle(t, eng)

	img := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3})
	w := postJSON(t, h.CheckImage, `{"image":"`+img+`","channel":"zalo"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep audit.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "Poster copy.", rep.CorrectedText)
	assert.Equal(t, "POSTER COPY", rep.PlainText)
	assert.Equal(t, []string{"logo too small"}, rep.DesignFeedback)

	// the decoded bytes and sniffed MIME reached the engine
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}, eng.last.Image)
	assert.Equal(t, "image/jpeg", eng.last.MIME)
}

func TestCheckImageRejectsInvalidInput(t *testing.T) {
	h := newTestHandle(t, &fakeEngine{})

	t.Run("empty image", func(t *testing.T) {
		w := postJSON(t, h.CheckImage, `{"image":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not base64", func(t *testing.T) {
		w := postJSON(t, h.CheckImage, `{"image":"!!not//base64!!"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
