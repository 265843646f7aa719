//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/IvanM-GM/replygen"
	"github.com/IvanM-GM/replygen/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerator_Integration_GeneratesComments(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	g := gemini.NewGenerator(client, "")
	post := &replygen.Post{Author: "@gopher", Text: "Go 1.25 is out with a faster garbage collector."}

	raw, err := g.GenerateText(ctx, replygen.GenerateRequest{
		System:      replygen.SystemPrompt,
		Prompt:      replygen.BuildPrompt(replygen.NewCommentRequest(post, 3)),
		MaxTokens:   replygen.DefaultMaxTokens,
		Temperature: replygen.DefaultTemperature,
		JSON:        true,
	})
	require.NoError(t, err)

	res, err := replygen.ParseCommentResponse(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Comments)
	assert.LessOrEqual(t, len(res.Comments), replygen.MaxComments)
}
