package replygen

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs the backend how to write comments and which JSON
// shape to answer with.
const SystemPrompt = `You are an expert in social media analysis and in writing relevant replies.
Your task is to analyze a post and generate diverse, interesting and relevant comments for it.

Rules for the comments:
1. Comments must be relevant to the content of the post
2. Use different styles: supportive, critical, inquisitive, humorous
3. Comments should sound natural and not too formal
4. Avoid repetition and boilerplate phrases
5. Take the context of images or video into account when present
6. Vary the length of comments (short and medium)
7. Use emoji where appropriate, but do not overdo it

Response format:
{
    "comments": [
        "Comment 1",
        "Comment 2",
        "Comment 3",
        "Comment 4",
        "Comment 5"
    ],
    "analysis": {
        "tone": "overall tone of the post",
        "topics": ["topic1", "topic2"],
        "sentiment": "positive/negative/neutral",
        "engagement_potential": "high/medium/low"
    }
}`

// BuildPrompt renders the user prompt for req.
// The output depends only on req.
func BuildPrompt(req *CommentRequest) string {
	var lines []string
	lines = append(lines,
		"Post author: "+req.Post.Author,
		"Post text: "+req.Post.Text,
	)

	if req.ImagesDescription != "" {
		lines = append(lines, "Images: "+req.ImagesDescription)
	}
	if req.VideoDescription != "" {
		lines = append(lines, "Video: "+req.VideoDescription)
	}

	var stats []string
	if n := req.Post.LikesCount; n != nil {
		stats = append(stats, fmt.Sprintf("likes: %d", *n))
	}
	if n := req.Post.RetweetsCount; n != nil {
		stats = append(stats, fmt.Sprintf("retweets: %d", *n))
	}
	if n := req.Post.RepliesCount; n != nil {
		stats = append(stats, fmt.Sprintf("replies: %d", *n))
	}
	if len(stats) > 0 {
		lines = append(lines, "Engagement: "+strings.Join(stats, ", "))
	}

	lines = append(lines, fmt.Sprintf("Generate %d diverse comments for this post.", req.CommentCount))
	return strings.Join(lines, "\n")
}

// BuildSentimentPrompt renders the prompt for a standalone sentiment check.
func BuildSentimentPrompt(text string) string {
	return `Analyze the sentiment of the following post and return the result in JSON format:

Text: ` + text + `

The result must contain:
- sentiment: positive/negative/neutral
- confidence: a number from 0 to 1
- topics: a list of the main topics
- tone: overall tone (formal/informal/humorous/serious)`
}
