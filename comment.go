package replygen

import (
	"fmt"
	"time"
)

// MaxComments caps the number of comments kept from a generation.
const MaxComments = 5

// DefaultCommentCount is requested when the caller does not ask for a count.
const DefaultCommentCount = 5

// Default analysis labels.
const (
	DefaultTone                = "neutral"
	DefaultSentiment           = "neutral"
	DefaultEngagementPotential = "medium"
)

// CommentRequest is the generation input derived from a post.
type CommentRequest struct {
	Post              *Post
	CommentCount      int
	ImagesDescription string
	VideoDescription  string
}

// NewCommentRequest derives a request from post, describing attached media.
func NewCommentRequest(post *Post, count int) *CommentRequest {
	req := &CommentRequest{
		Post:         post,
		CommentCount: count,
	}
	if len(post.Images) > 0 {
		req.ImagesDescription = fmt.Sprintf("Post contains %d images", len(post.Images))
	}
	if post.VideoURL != nil {
		req.VideoDescription = "Post contains a video"
	}
	return req
}

// PostAnalysis is the generated structural description of a post.
// All four fields are always populated.
type PostAnalysis struct {
	Tone                string   `json:"tone"`
	Topics              []string `json:"topics"`
	Sentiment           string   `json:"sentiment"`
	EngagementPotential string   `json:"engagementPotential"`
}

// DefaultAnalysis returns the analysis used when generation provides none.
func DefaultAnalysis() PostAnalysis {
	return PostAnalysis{
		Tone:                DefaultTone,
		Topics:              []string{},
		Sentiment:           DefaultSentiment,
		EngagementPotential: DefaultEngagementPotential,
	}
}

// CommentResult is the normalized outcome of a generation call.
type CommentResult struct {
	Comments    []string
	Analysis    PostAnalysis
	GeneratedAt time.Time
}
