package generator

import "context"

// Client produces practice content through the external generation API. How
// the content is produced or parsed is out of scope here; callers treat the
// result as opaque text.
type Client interface {
	RoleplayScenario(ctx context.Context, eventTrack string) (string, error)
	ExamQuestions(ctx context.Context, eventTrack string, count int) (string, error)
	WrittenFeedback(ctx context.Context, draft string) (string, error)
}

// Config for the HTTP generator client
type Config struct {
	APIKey  string
	BaseURL string
}

type generateRequest struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
	Count  int    `json:"count,omitempty"`
}

type generateResponse struct {
	Content string `json:"content"`
}
