package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/IvanM-GM/replygen"
	"github.com/PuerkitoBio/goquery"
)

// Compile-time interface verification.
var _ replygen.PostExtractor = (*Extractor)(nil)

var digitsRe = regexp.MustCompile(`\d+`)

// Extractor implements replygen.PostExtractor with CSS selector chains.
// The zero value is not usable; create instances with NewExtractor.
type Extractor struct {
	Text   []Strategy
	Author []Strategy
	Video  []Strategy
	Images []string
}

// NewExtractor creates an Extractor with the default chains.
func NewExtractor() *Extractor {
	return &Extractor{
		Text:   TextStrategies,
		Author: AuthorStrategies,
		Video:  VideoStrategies,
		Images: ImageSelectors,
	}
}

// Extract parses html and resolves every post field independently.
// A field whose chain yields nothing keeps its empty default.
func (e *Extractor) Extract(html string, sourceURL string) (*replygen.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, replygen.Errorf(replygen.EEXTRACT, "failed to parse HTML: %v", err)
	}

	post := &replygen.Post{
		URL:    sourceURL,
		Images: e.images(doc),
	}
	post.Text, _ = Resolve(doc, e.Text)
	post.Author, _ = Resolve(doc, e.Author)
	if v, _ := Resolve(doc, e.Video); v != "" {
		post.VideoURL = &v
	}
	post.LikesCount = counter(doc, LikeMarker)
	post.RetweetsCount = counter(doc, RetweetMarker)
	post.RepliesCount = counter(doc, ReplyMarker)

	return post, nil
}

// images unions all selectors in order, keeping duplicates.
func (e *Extractor) images(doc *goquery.Document) []string {
	images := []string{}
	for _, selector := range e.Images {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			src, ok := sel.Attr("src")
			if !ok || !strings.Contains(src, MediaHost) {
				return
			}
			images = append(images, absoluteMediaURL(src))
		})
	}
	return images
}

func absoluteMediaURL(src string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return "https://" + replygen.CanonicalHost + src
	default:
		return src
	}
}

// counter reads the first digit run from the parent of the first marker.
// "1.2K" yields 1.
func counter(doc *goquery.Document, marker string) *int {
	parent := doc.Find(marker).First().Parent()
	if parent.Length() == 0 {
		return nil
	}
	m := digitsRe.FindString(visibleText(parent.Nodes[0]))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}
