package replygen

import "context"

// Defaults for generation requests.
const (
	DefaultMaxTokens   = 500
	DefaultTemperature = float32(0.7)
)

// GenerateRequest is a single text-generation call.
type GenerateRequest struct {
	// System is the instruction sent ahead of the prompt. Optional.
	System string

	// Prompt is the user prompt.
	Prompt string

	// MaxTokens caps the output length. Zero leaves it to the backend.
	MaxTokens int

	Temperature float32

	// JSON asks the backend to answer with a JSON object.
	JSON bool
}

// Generator sends prompts to a remote text-generation backend.
// Implementations are stateless senders, safe for concurrent use.
type Generator interface {
	// GenerateText returns the raw text produced for req.
	// Backend failures (quota, auth, network) are reported as EGENERATE.
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)

	// ConnectionHealthy probes the backend. Used for liveness reporting only.
	ConnectionHealthy(ctx context.Context) bool

	// Close releases the underlying client.
	Close() error
}
