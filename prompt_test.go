package replygen_test

import (
	"testing"

	"github.com/IvanM-GM/replygen"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestNewCommentRequest(t *testing.T) {
	t.Parallel()

	t.Run("describes images and video", func(t *testing.T) {
		t.Parallel()

		video := "https://video.twimg.com/v.mp4"
		post := &replygen.Post{
			Images:   []string{"https://pbs.twimg.com/a.jpg", "https://pbs.twimg.com/b.jpg"},
			VideoURL: &video,
		}

		req := replygen.NewCommentRequest(post, 3)

		assert.Equal(t, 3, req.CommentCount)
		assert.Equal(t, "Post contains 2 images", req.ImagesDescription)
		assert.Equal(t, "Post contains a video", req.VideoDescription)
	})

	t.Run("leaves descriptions empty without media", func(t *testing.T) {
		t.Parallel()

		req := replygen.NewCommentRequest(&replygen.Post{Images: []string{}}, 5)

		assert.Empty(t, req.ImagesDescription)
		assert.Empty(t, req.VideoDescription)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("minimal post", func(t *testing.T) {
		t.Parallel()

		req := replygen.NewCommentRequest(&replygen.Post{Author: "@alice", Text: "Hello world"}, 3)

		got := replygen.BuildPrompt(req)

		assert.Equal(t, "Post author: @alice\nPost text: Hello world\nGenerate 3 diverse comments for this post.", got)
	})

	t.Run("all sections in order", func(t *testing.T) {
		t.Parallel()

		video := "https://video.twimg.com/v.mp4"
		post := &replygen.Post{
			Author:        "@bob",
			Text:          "Launch day",
			Images:        []string{"https://pbs.twimg.com/a.jpg"},
			VideoURL:      &video,
			LikesCount:    intPtr(12),
			RetweetsCount: intPtr(3),
			RepliesCount:  intPtr(0),
		}

		got := replygen.BuildPrompt(replygen.NewCommentRequest(post, 5))

		want := "Post author: @bob\n" +
			"Post text: Launch day\n" +
			"Images: Post contains 1 images\n" +
			"Video: Post contains a video\n" +
			"Engagement: likes: 12, retweets: 3, replies: 0\n" +
			"Generate 5 diverse comments for this post."
		assert.Equal(t, want, got)
	})

	t.Run("lists only known counters", func(t *testing.T) {
		t.Parallel()

		post := &replygen.Post{Author: "@bob", Text: "x", RepliesCount: intPtr(7)}

		got := replygen.BuildPrompt(replygen.NewCommentRequest(post, 2))

		assert.Contains(t, got, "\nEngagement: replies: 7\n")
		assert.NotContains(t, got, "likes")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		post := &replygen.Post{Author: "@carol", Text: "Same input", LikesCount: intPtr(1)}

		a := replygen.BuildPrompt(replygen.NewCommentRequest(post, 4))
		b := replygen.BuildPrompt(replygen.NewCommentRequest(post, 4))

		assert.Equal(t, a, b)
	})
}

func TestBuildSentimentPrompt(t *testing.T) {
	t.Parallel()

	got := replygen.BuildSentimentPrompt("I love this")

	assert.Contains(t, got, "Text: I love this")
	assert.Contains(t, got, "confidence")
}
