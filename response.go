package replygen

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// minFallbackLineLength is the rune count a free-text line must exceed to
// count as a comment.
const minFallbackLineLength = 10

var (
	numberMarkerRe = regexp.MustCompile(`^\d+\.\s*`)
	bulletMarkerRe = regexp.MustCompile(`^[-*]\s*`)
)

// ParseCommentResponse interprets raw generation output.
//
// Output that is syntactically JSON is validated against the expected
// shape: a top level that is not an object or a non-string comment is
// EPARSE, a missing or non-array "comments" member is ESHAPE. Output that
// is not JSON at all is read line by line as free text. Both paths return
// at most MaxComments comments and a fully populated analysis.
func ParseCommentResponse(raw string) (*CommentResult, error) {
	body := stripCodeFence(strings.TrimSpace(raw))

	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return parseFreeText(raw), nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Errorf(EPARSE, "generation output is not a JSON object")
	}

	items, ok := obj["comments"].([]any)
	if !ok {
		return nil, Errorf(ESHAPE, "generation output has no comments list")
	}
	if len(items) > MaxComments {
		items = items[:MaxComments]
	}

	comments := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, Errorf(EPARSE, "comment %d is not a string", i)
		}
		comments = append(comments, s)
	}

	return &CommentResult{
		Comments: comments,
		Analysis: parseAnalysis(obj["analysis"]),
	}, nil
}

func parseAnalysis(v any) PostAnalysis {
	a := DefaultAnalysis()
	obj, ok := v.(map[string]any)
	if !ok {
		return a
	}

	if s := stringField(obj, "tone"); s != "" {
		a.Tone = s
	}
	if s := stringField(obj, "sentiment"); s != "" {
		a.Sentiment = s
	}
	if s := stringField(obj, "engagement_potential"); s != "" {
		a.EngagementPotential = s
	} else if s := stringField(obj, "engagementPotential"); s != "" {
		a.EngagementPotential = s
	}
	a.Topics = topicSet(obj["topics"])
	return a
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// topicSet keeps the string members of v, first occurrence wins.
func topicSet(v any) []string {
	topics := []string{}
	items, ok := v.([]any)
	if !ok {
		return topics
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		topics = append(topics, s)
	}
	return topics
}

func parseFreeText(raw string) *CommentResult {
	comments := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minFallbackLineLength {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, `"`) {
			continue
		}
		line = numberMarkerRe.ReplaceAllString(line, "")
		line = bulletMarkerRe.ReplaceAllString(line, "")
		comments = append(comments, line)
		if len(comments) == MaxComments {
			break
		}
	}
	return &CommentResult{
		Comments: comments,
		Analysis: DefaultAnalysis(),
	}
}

// stripCodeFence removes a surrounding Markdown code fence, if any.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSpace(s)
}

// SentimentReport is the outcome of a standalone sentiment check.
type SentimentReport struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Topics     []string `json:"topics"`
	Tone       string   `json:"tone"`
}

// DefaultSentimentReport is returned when a sentiment check fails.
func DefaultSentimentReport() SentimentReport {
	return SentimentReport{
		Sentiment:  DefaultSentiment,
		Confidence: 0.5,
		Topics:     []string{},
		Tone:       DefaultTone,
	}
}

// ParseSentimentResponse interprets sentiment output. It never fails:
// undecodable output yields DefaultSentimentReport and missing members
// keep their defaults.
func ParseSentimentResponse(raw string) SentimentReport {
	r := DefaultSentimentReport()

	var obj map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(strings.TrimSpace(raw))), &obj); err != nil || obj == nil {
		return r
	}

	if s := stringField(obj, "sentiment"); s != "" {
		r.Sentiment = s
	}
	if s := stringField(obj, "tone"); s != "" {
		r.Tone = s
	}
	if c, ok := obj["confidence"].(float64); ok && c >= 0 && c <= 1 {
		r.Confidence = c
	}
	r.Topics = topicSet(obj["topics"])
	return r
}
