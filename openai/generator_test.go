package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/IvanM-GM/replygen"
	"github.com/IvanM-GM/replygen/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateText(t *testing.T) {
	t.Parallel()

	t.Run("sends chat completion request", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		var auth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"comments\":[\"hi\"]}"}}]}`))
		}))
		defer server.Close()

		g := openai.NewGenerator("sk-test", server.URL+"/v1/", "")
		defer g.Close()

		text, err := g.GenerateText(context.Background(), replygen.GenerateRequest{
			System:      "be nice",
			Prompt:      "Post text: hello",
			MaxTokens:   500,
			Temperature: 0.7,
			JSON:        true,
		})

		require.NoError(t, err)
		assert.Equal(t, `{"comments":["hi"]}`, text)
		assert.Equal(t, "Bearer sk-test", auth)
		assert.Equal(t, openai.DefaultModel, got["model"])
		assert.InDelta(t, 500, got["max_tokens"], 1e-9)
		assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
		messages := got["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]any)["role"])
		assert.Equal(t, "Post text: hello", messages[1].(map[string]any)["content"])
	})

	t.Run("omits system message and response format when unset", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
		}))
		defer server.Close()

		g := openai.NewGenerator("", server.URL, "gpt-test")

		_, err := g.GenerateText(context.Background(), replygen.GenerateRequest{Prompt: "p"})

		require.NoError(t, err)
		assert.Len(t, got["messages"], 1)
		assert.NotContains(t, got, "response_format")
		assert.Equal(t, "gpt-test", got["model"])
	})

	t.Run("tags non-2xx responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
		}))
		defer server.Close()

		g := openai.NewGenerator("sk", server.URL, "")

		_, err := g.GenerateText(context.Background(), replygen.GenerateRequest{Prompt: "p"})

		assert.Equal(t, replygen.EGENERATE, replygen.ErrorCode(err))
		assert.Contains(t, replygen.ErrorMessage(err), "429")
	})

	t.Run("does not retry failed requests", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		g := openai.NewGenerator("sk", server.URL, "")

		_, err := g.GenerateText(context.Background(), replygen.GenerateRequest{Prompt: "p"})

		assert.Equal(t, replygen.EGENERATE, replygen.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("tags empty choices", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		g := openai.NewGenerator("sk", server.URL, "")

		_, err := g.GenerateText(context.Background(), replygen.GenerateRequest{Prompt: "p"})

		assert.Equal(t, replygen.EGENERATE, replygen.ErrorCode(err))
	})
}

func TestGenerator_ConnectionHealthy(t *testing.T) {
	t.Parallel()

	t.Run("true when models are listed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"}]}`))
		}))
		defer server.Close()

		assert.True(t, openai.NewGenerator("sk", server.URL, "").ConnectionHealthy(context.Background()))
	})

	t.Run("false on unauthorized", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		assert.False(t, openai.NewGenerator("bad", server.URL, "").ConnectionHealthy(context.Background()))
	})
}
