package replygen_test

import (
	"testing"

	"github.com/IvanM-GM/replygen"
	"github.com/stretchr/testify/assert"
)

func TestValidatePostURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"twitter permalink", "https://twitter.com/alice/status/1234567890", true},
		{"x permalink", "https://x.com/alice/status/1", true},
		{"www twitter", "https://www.twitter.com/alice/status/42", true},
		{"www x", "https://www.x.com/alice/status/42", true},
		{"uppercase host", "https://X.COM/alice/status/42", true},
		{"trailing segment", "https://x.com/alice/status/42/photo/1", true},
		{"query string", "https://x.com/alice/status/42?s=20", true},
		{"wrong host", "https://example.com/alice/status/42", false},
		{"lookalike host", "https://twitter.com.evil.io/alice/status/42", false},
		{"mobile host", "https://mobile.twitter.com/alice/status/42", false},
		{"non numeric id", "https://x.com/alice/status/abc", false},
		{"id with suffix", "https://x.com/alice/status/42abc", false},
		{"profile url", "https://x.com/alice", false},
		{"missing handle", "https://x.com/status/42", false},
		{"empty", "", false},
		{"garbage", "://%%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, replygen.ValidatePostURL(tt.url))
		})
	}
}

func TestPostIDFromURL(t *testing.T) {
	t.Parallel()

	id, ok := replygen.PostIDFromURL("https://twitter.com/alice/status/1234567890")

	assert.True(t, ok)
	assert.Equal(t, "1234567890", id)
}

func TestPermalinkForID(t *testing.T) {
	t.Parallel()

	url := replygen.PermalinkForID("42")

	assert.Equal(t, "https://twitter.com/i/status/42", url)
	assert.True(t, replygen.ValidatePostURL(url))
}

func TestPost_Summary(t *testing.T) {
	t.Parallel()

	likes := 10
	video := "https://video.twimg.com/v.mp4"
	p := &replygen.Post{
		URL:        "https://x.com/alice/status/1",
		Text:       "Hello",
		Author:     "@alice",
		Images:     []string{"https://pbs.twimg.com/a.jpg", "https://pbs.twimg.com/b.jpg"},
		VideoURL:   &video,
		LikesCount: &likes,
	}

	s := p.Summary()

	assert.True(t, s.HasImages)
	assert.True(t, s.HasVideo)
	assert.Equal(t, 2, s.ImageCount)
	assert.Equal(t, &likes, s.Engagement.Likes)
	assert.Nil(t, s.Engagement.Retweets)
	assert.True(t, s.Engagement.Any())
}

func TestPost_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, (&replygen.Post{}).Empty())
	assert.False(t, (&replygen.Post{Author: "@alice"}).Empty())
	assert.False(t, (&replygen.Post{Text: "hi"}).Empty())
}
