package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/IvanM-GM/replygen"
	"github.com/IvanM-GM/replygen/mock"
	rgslog "github.com/IvanM-GM/replygen/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_GenerateText(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes without prompt contents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateTextFn: func(ctx context.Context, req replygen.GenerateRequest) (string, error) {
				return `{"comments":[]}`, nil
			},
		}

		g := rgslog.NewLoggingGenerator(inner, logger)
		text, err := g.GenerateText(context.Background(), replygen.GenerateRequest{
			Prompt:    "secret prompt",
			MaxTokens: 500,
			JSON:      true,
		})

		require.NoError(t, err)
		assert.Equal(t, `{"comments":[]}`, text)
		output := buf.String()
		assert.Contains(t, output, "msg=generate")
		assert.Contains(t, output, "prompt_chars=13")
		assert.Contains(t, output, "response_chars=15")
		assert.Contains(t, output, "max_tokens=500")
		assert.NotContains(t, output, "secret prompt")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateTextFn: func(ctx context.Context, req replygen.GenerateRequest) (string, error) {
				return "", replygen.Errorf(replygen.EGENERATE, "quota exceeded")
			},
		}

		_, err := rgslog.NewLoggingGenerator(inner, logger).GenerateText(context.Background(), replygen.GenerateRequest{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "quota exceeded")
	})
}

func TestLoggingGenerator_Delegates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	closed := false
	inner := &mock.Generator{
		ConnectionHealthyFn: func(ctx context.Context) bool { return true },
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	g := rgslog.NewLoggingGenerator(inner, logger)

	assert.True(t, g.ConnectionHealthy(context.Background()))
	require.NoError(t, g.Close())
	assert.True(t, closed)
}
