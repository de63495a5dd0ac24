// Package llm defines the generation engine consumed by the audit pipeline.
// The engine is an untrusted black box: it returns raw text that may or may
// not contain the requested JSON, and callers recover from any failure by
// feeding an empty record into normalization.
package llm

import "context"

// CheckInput is one piece of marketing copy to review. Either Text or Image is
// set; Image mode relies on the model's OCR.
type CheckInput struct {
	Text         string
	Image        []byte
	MIME         string
	Requirements string
}

type Engine interface {
	Name() string
	GetModel() string
	// Check asks the model for the editorial JSON and returns its raw text.
	Check(ctx context.Context, in CheckInput) (string, error)
}
