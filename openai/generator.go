// Package openai implements replygen.Generator on an OpenAI-compatible
// chat completions API.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/IvanM-GM/replygen"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Defaults.
const (
	DefaultAPIURL  = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second
)

// Ensure Generator implements replygen.Generator at compile time.
var _ replygen.Generator = (*Generator)(nil)

// Generator implements replygen.Generator using the chat completions endpoint.
type Generator struct {
	client     openai.Client
	httpClient *http.Client
	model      string
}

// NewGenerator creates a new Generator. Empty apiURL and model select the defaults.
// Requests are not retried; the analyzer's timeout bounds each call.
func NewGenerator(apiKey, apiURL, model string) *Generator {
	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if model == "" {
		model = DefaultModel
	}

	httpClient := &http.Client{Timeout: DefaultTimeout}
	opts := []option.RequestOption{
		option.WithBaseURL(apiURL + "/"),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	return &Generator{
		client:     openai.NewClient(opts...),
		httpClient: httpClient,
		model:      model,
	}
}

// GenerateText sends req as a chat completion and returns the first choice.
func (g *Generator) GenerateText(ctx context.Context, req replygen.GenerateRequest) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(g.model),
		Messages:    messages,
		Temperature: openai.Float(float64(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", replygen.Errorf(replygen.EGENERATE, "openai: unexpected status %d: %s", apiErr.StatusCode, apiErr.Message)
		}
		return "", replygen.Errorf(replygen.EGENERATE, "openai: request failed: %v", err)
	}
	if len(completion.Choices) == 0 {
		return "", replygen.Errorf(replygen.EGENERATE, "openai: response has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// ConnectionHealthy reports whether the models endpoint lists any model.
func (g *Generator) ConnectionHealthy(ctx context.Context) bool {
	page, err := g.client.Models.List(ctx)
	if err != nil {
		return false
	}
	return len(page.Data) > 0
}

// Close releases idle connections.
func (g *Generator) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}
