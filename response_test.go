package replygen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/IvanM-GM/replygen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommentResponse_Structured(t *testing.T) {
	t.Parallel()

	t.Run("takes comments and analysis", func(t *testing.T) {
		t.Parallel()

		raw := `{"comments":["a","b","c"],"analysis":{"tone":"upbeat","topics":["tech","tech","ai"],"sentiment":"positive","engagement_potential":"high"}}`

		res, err := replygen.ParseCommentResponse(raw)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, res.Comments)
		assert.Equal(t, replygen.PostAnalysis{
			Tone:                "upbeat",
			Topics:              []string{"tech", "ai"},
			Sentiment:           "positive",
			EngagementPotential: "high",
		}, res.Analysis)
	})

	t.Run("truncates to five comments", func(t *testing.T) {
		t.Parallel()

		raw := `{"comments":["1","2","3","4","5","6","7"]}`

		res, err := replygen.ParseCommentResponse(raw)

		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, res.Comments)
	})

	t.Run("defaults missing analysis", func(t *testing.T) {
		t.Parallel()

		res, err := replygen.ParseCommentResponse(`{"comments":["a"]}`)

		require.NoError(t, err)
		assert.Equal(t, replygen.DefaultAnalysis(), res.Analysis)
	})

	t.Run("defaults non-object analysis", func(t *testing.T) {
		t.Parallel()

		res, err := replygen.ParseCommentResponse(`{"comments":["a"],"analysis":"great"}`)

		require.NoError(t, err)
		assert.Equal(t, replygen.DefaultAnalysis(), res.Analysis)
	})

	t.Run("defaults fields individually", func(t *testing.T) {
		t.Parallel()

		res, err := replygen.ParseCommentResponse(`{"comments":[],"analysis":{"tone":"dry","sentiment":7,"engagementPotential":"low"}}`)

		require.NoError(t, err)
		assert.Equal(t, "dry", res.Analysis.Tone)
		assert.Equal(t, "neutral", res.Analysis.Sentiment)
		assert.Equal(t, "low", res.Analysis.EngagementPotential)
		assert.Equal(t, []string{}, res.Analysis.Topics)
	})

	t.Run("strips code fence", func(t *testing.T) {
		t.Parallel()

		raw := "```json\n{\"comments\":[\"fenced\"]}\n```"

		res, err := replygen.ParseCommentResponse(raw)

		require.NoError(t, err)
		assert.Equal(t, []string{"fenced"}, res.Comments)
	})

	t.Run("missing comments is a shape error", func(t *testing.T) {
		t.Parallel()

		_, err := replygen.ParseCommentResponse(`{"analysis":{}}`)

		assert.Equal(t, replygen.ESHAPE, replygen.ErrorCode(err))
	})

	t.Run("non-array comments is a shape error", func(t *testing.T) {
		t.Parallel()

		_, err := replygen.ParseCommentResponse(`{"comments":"one, two"}`)

		assert.Equal(t, replygen.ESHAPE, replygen.ErrorCode(err))
	})

	t.Run("non-string comment is a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := replygen.ParseCommentResponse(`{"comments":["ok",{"text":"nested"}]}`)

		assert.Equal(t, replygen.EPARSE, replygen.ErrorCode(err))
	})

	t.Run("non-object top level is a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := replygen.ParseCommentResponse(`["a","b"]`)

		assert.Equal(t, replygen.EPARSE, replygen.ErrorCode(err))
	})
}

func TestParseCommentResponse_FreeText(t *testing.T) {
	t.Parallel()

	t.Run("strips list markers", func(t *testing.T) {
		t.Parallel()

		res, err := replygen.ParseCommentResponse("1. Great post!")

		require.NoError(t, err)
		assert.Equal(t, []string{"Great post!"}, res.Comments)
		assert.Equal(t, replygen.DefaultAnalysis(), res.Analysis)
	})

	t.Run("strips bullets", func(t *testing.T) {
		t.Parallel()

		res, err := replygen.ParseCommentResponse("- This is really insightful\n* Totally agree with this")

		require.NoError(t, err)
		assert.Equal(t, []string{"This is really insightful", "Totally agree with this"}, res.Comments)
	})

	t.Run("keeps first five of six lines", func(t *testing.T) {
		t.Parallel()

		lines := make([]string, 6)
		for i := range lines {
			lines[i] = fmt.Sprintf("This is comment number %d", i+1)
		}

		res, err := replygen.ParseCommentResponse(strings.Join(lines, "\n"))

		require.NoError(t, err)
		assert.Equal(t, lines[:5], res.Comments)
		assert.Equal(t, replygen.DefaultAnalysis(), res.Analysis)
	})

	t.Run("drops short and structured lines", func(t *testing.T) {
		t.Parallel()

		raw := "Sure!\n{ \"comments\": [\n\"quoted line that is long\"\nA real comment here\n\n   "

		res, err := replygen.ParseCommentResponse(raw)

		require.NoError(t, err)
		assert.Equal(t, []string{"A real comment here"}, res.Comments)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		t.Parallel()

		res, err := replygen.ParseCommentResponse("Привіт світ\nПривіт!")

		require.NoError(t, err)
		assert.Equal(t, []string{"Привіт світ"}, res.Comments)
	})
}

func TestParseCommentResponse_AlwaysShaped(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"null",
		"42",
		`"just a string"`,
		`{"comments":null}`,
		`{"comments":[],"analysis":null}`,
		`{"comments":["a"],"analysis":{"topics":"tech"}}`,
		`{"comments":["a"],"analysis":{"topics":[1,"x",null,"x"]}}`,
		"{not json at all",
		"```\n```",
		strings.Repeat("a long enough free text line\n", 20),
	}

	for _, raw := range inputs {
		res, err := replygen.ParseCommentResponse(raw)
		if err != nil {
			code := replygen.ErrorCode(err)
			assert.Contains(t, []string{replygen.EPARSE, replygen.ESHAPE}, code, "input %q", raw)
			continue
		}
		assert.LessOrEqual(t, len(res.Comments), replygen.MaxComments, "input %q", raw)
		assert.NotEmpty(t, res.Analysis.Tone, "input %q", raw)
		assert.NotEmpty(t, res.Analysis.Sentiment, "input %q", raw)
		assert.NotEmpty(t, res.Analysis.EngagementPotential, "input %q", raw)
		assert.NotNil(t, res.Analysis.Topics, "input %q", raw)
	}
}

func TestParseSentimentResponse(t *testing.T) {
	t.Parallel()

	t.Run("reads all fields", func(t *testing.T) {
		t.Parallel()

		r := replygen.ParseSentimentResponse(`{"sentiment":"positive","confidence":0.9,"topics":["food"],"tone":"informal"}`)

		assert.Equal(t, replygen.SentimentReport{
			Sentiment:  "positive",
			Confidence: 0.9,
			Topics:     []string{"food"},
			Tone:       "informal",
		}, r)
	})

	t.Run("defaults on garbage", func(t *testing.T) {
		t.Parallel()

		r := replygen.ParseSentimentResponse("I think it is positive")

		assert.Equal(t, replygen.DefaultSentimentReport(), r)
	})

	t.Run("ignores out of range confidence", func(t *testing.T) {
		t.Parallel()

		r := replygen.ParseSentimentResponse(`{"sentiment":"negative","confidence":7}`)

		assert.Equal(t, "negative", r.Sentiment)
		assert.InDelta(t, 0.5, r.Confidence, 1e-9)
	})
}
