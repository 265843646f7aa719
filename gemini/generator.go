// Package gemini implements replygen.Generator on the Google Gemini API.
package gemini

import (
	"context"

	"github.com/IvanM-GM/replygen"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements replygen.Generator at compile time.
var _ replygen.Generator = (*Generator)(nil)

// Generator implements replygen.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// GenerateText sends req to Gemini and returns the response text.
func (g *Generator) GenerateText(ctx context.Context, req replygen.GenerateRequest) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.Prompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", replygen.Errorf(replygen.EGENERATE, "gemini: %v", err)
	}
	if result == nil {
		return "", replygen.Errorf(replygen.EGENERATE, "gemini returned nil result")
	}

	return result.Text(), nil
}

// ConnectionHealthy reports whether the model listing endpoint answers.
func (g *Generator) ConnectionHealthy(ctx context.Context) bool {
	page, err := g.client.Models.List(ctx, &genai.ListModelsConfig{PageSize: 1})
	if err != nil {
		return false
	}
	return len(page.Items) > 0
}

// Close is a no-op; the genai client holds no resources that need release.
func (g *Generator) Close() error {
	return nil
}

// BuildConfig returns the GenerateContentConfig for req.
func BuildConfig(req replygen.GenerateRequest) *genai.GenerateContentConfig {
	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
