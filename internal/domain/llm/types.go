package llm

import "context"

// Provider defines the contract for the external completion gateway.
type Provider interface {
	// Complete runs a completion to the end and returns the full text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// StreamCompletion returns a lazy stream of text chunks.
	StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error)
}

// CompletionRequest carries one advisor or verdict turn to the gateway.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	MaxTokens    int
	Temperature  float32
}

// Stream abstracts an SSE or chunked completion response. Recv returns
// io.EOF once the upstream emits its terminal marker.
type Stream interface {
	Recv() (string, error)
	Close() error
}
