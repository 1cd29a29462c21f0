package services

import "context"

// CompletionClient submits one prompt and returns the model's raw text
// reply, unmodified. One call per evaluation; no retry.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
