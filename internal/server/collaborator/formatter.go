package collaborator

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/promisekeeper/internal/logging"
)

// In-band replies for failures that happen before any text is generated.
const (
	ReplyEmptyPromise = "Error: Promise is empty; no promise provided"
	ReplyNoAPIKey     = "Error: GEMINI_API_KEY is not set"
	ReplyNoModel      = "Error: No model available; set GEMINI_MODEL"
)

// Formatter builds the fixed prompts and turns generator failures into
// in-band error replies.
type Formatter struct {
	gen    Generator
	logger logging.Logger
}

func NewFormatter(gen Generator, logger logging.Logger) *Formatter {
	return &Formatter{gen: gen, logger: logger.With("module", "formatter")}
}

// FormatNewPromise returns "Name: ...\nType: ...\nPromise: ..." or an error reply.
func (f *Formatter) FormatNewPromise(ctx context.Context, rawText string) string {
	if strings.TrimSpace(rawText) == "" {
		return ReplyEmptyPromise
	}
	return f.call(ctx, "Error formatting promise", createPrompt(rawText))
}

// RefinePromise returns three labelled solutions or an error reply.
func (f *Formatter) RefinePromise(ctx context.Context, content, reason, category string) string {
	if strings.TrimSpace(content) == "" {
		return ReplyEmptyPromise
	}
	return f.call(ctx, "Error generating refined promise", refinePrompt(content, reason, category))
}

// GenerateUpdatedPromise returns "Name: ...\nPromise: ...\nDeadline: ..." or
// an error reply.
func (f *Formatter) GenerateUpdatedPromise(ctx context.Context, content, reason, category, solutionLabel string) string {
	if strings.TrimSpace(content) == "" {
		return ReplyEmptyPromise
	}
	return f.call(ctx, "Error generating updated promise", updatePrompt(content, reason, category, solutionLabel))
}

func (f *Formatter) call(ctx context.Context, failurePrefix, prompt string) string {
	text, err := f.gen.Generate(ctx, prompt)
	switch {
	case err == nil:
		return text
	case errors.Is(err, ErrNoAPIKey):
		return ReplyNoAPIKey
	case errors.Is(err, ErrNoModel):
		return ReplyNoModel
	default:
		f.logger.Warn(ctx, "generation failed", "error", err)
		return failurePrefix + ": " + err.Error()
	}
}

// IsErrorReply reports whether reply is an in-band failure.
func IsErrorReply(reply string) bool {
	return strings.HasPrefix(strings.TrimSpace(reply), "Error")
}
