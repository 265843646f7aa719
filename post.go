package replygen

import (
	"net/url"
	"regexp"
	"strings"
)

// Post is the structured content extracted from a post's rendered markup.
// Every field is best-effort: strings default to "", counts and the video
// reference default to nil.
type Post struct {
	URL           string   `json:"url"`
	Text          string   `json:"text"`
	Author        string   `json:"author"`
	Images        []string `json:"images"`
	VideoURL      *string  `json:"videoUrl"`
	LikesCount    *int     `json:"likesCount"`
	RetweetsCount *int     `json:"retweetsCount"`
	RepliesCount  *int     `json:"repliesCount"`
}

// Empty reports whether neither text nor author could be extracted.
// Callers treat such a post as not found.
func (p *Post) Empty() bool {
	return p.Text == "" && p.Author == ""
}

// Engagement returns the post's interaction counters.
func (p *Post) Engagement() Engagement {
	return Engagement{
		Likes:    p.LikesCount,
		Retweets: p.RetweetsCount,
		Replies:  p.RepliesCount,
	}
}

// Summary returns a condensed description of the post.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		URL:        p.URL,
		Text:       p.Text,
		Author:     p.Author,
		HasImages:  len(p.Images) > 0,
		HasVideo:   p.VideoURL != nil,
		ImageCount: len(p.Images),
		Engagement: p.Engagement(),
	}
}

// Engagement holds the interaction counters of a post.
type Engagement struct {
	Likes    *int `json:"likes"`
	Retweets *int `json:"retweets"`
	Replies  *int `json:"replies"`
}

// Any reports whether at least one counter is known.
func (e Engagement) Any() bool {
	return e.Likes != nil || e.Retweets != nil || e.Replies != nil
}

// PostSummary is a condensed description of a post.
type PostSummary struct {
	URL        string     `json:"url"`
	Text       string     `json:"text"`
	Author     string     `json:"author"`
	HasImages  bool       `json:"hasImages"`
	HasVideo   bool       `json:"hasVideo"`
	ImageCount int        `json:"imageCount"`
	Engagement Engagement `json:"engagement"`
}

// PostExtractor extracts structured post content from rendered markup.
type PostExtractor interface {
	// Extract parses html and returns the post found in it.
	// Fields that cannot be resolved keep their empty defaults; an error
	// is returned only when html cannot be parsed at all (EEXTRACT).
	Extract(html string, sourceURL string) (*Post, error)
}

// CanonicalHost is the host used to build permalinks and absolute media URLs.
const CanonicalHost = "twitter.com"

var allowedHosts = map[string]bool{
	"twitter.com":     true,
	"www.twitter.com": true,
	"x.com":           true,
	"www.x.com":       true,
}

var permalinkRe = regexp.MustCompile(`/([^/]+)/status/(\d+)(?:/|$)`)

// ValidatePostURL reports whether raw is a post permalink on an allowed host.
// Unparsable input is reported as invalid.
func ValidatePostURL(raw string) bool {
	_, ok := PostIDFromURL(raw)
	return ok
}

// PostIDFromURL returns the numeric post ID of a valid permalink.
func PostIDFromURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if !allowedHosts[strings.ToLower(u.Host)] {
		return "", false
	}
	m := permalinkRe.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// PermalinkForID builds a permalink for a post ID without knowing its author.
func PermalinkForID(id string) string {
	return "https://" + CanonicalHost + "/i/status/" + id
}
