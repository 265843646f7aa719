package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy resolves one scalar field from a parsed document.
// Find reports false when the strategy yields nothing usable.
type Strategy struct {
	Name string
	Find func(doc *goquery.Document) (string, bool)
}

// Resolve runs chain in order and returns the first non-empty value
// together with the name of the strategy that produced it.
func Resolve(doc *goquery.Document, chain []Strategy) (value string, source string) {
	for _, s := range chain {
		if v, ok := s.Find(doc); ok && v != "" {
			return v, s.Name
		}
	}
	return "", ""
}

// FirstText yields the trimmed visible text of the first element matching selector.
func FirstText(selector string) Strategy {
	return Strategy{
		Name: selector,
		Find: func(doc *goquery.Document) (string, bool) {
			sel := doc.Find(selector).First()
			if sel.Length() == 0 {
				return "", false
			}
			text := strings.TrimSpace(sel.Text())
			return text, text != ""
		},
	}
}

// FirstTextWithPrefix yields the trimmed text of the first element matching
// selector whose text starts with prefix.
func FirstTextWithPrefix(selector, prefix string) Strategy {
	return Strategy{
		Name: selector,
		Find: func(doc *goquery.Document) (string, bool) {
			var found string
			doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				text := strings.TrimSpace(sel.Text())
				if strings.HasPrefix(text, prefix) {
					found = text
					return false
				}
				return true
			})
			return found, found != ""
		},
	}
}

// FirstAttr yields the trimmed attr value of the first element matching selector.
func FirstAttr(selector, attr string) Strategy {
	return Strategy{
		Name: selector,
		Find: func(doc *goquery.Document) (string, bool) {
			v, ok := doc.Find(selector).First().Attr(attr)
			v = strings.TrimSpace(v)
			return v, ok && v != ""
		},
	}
}

// MetaContent yields the content of the named meta tag.
func MetaContent(name string) Strategy {
	s := FirstAttr(`meta[name="`+name+`"]`, "content")
	s.Name = "meta:" + name
	return s
}

// BodyText yields the first limit runes of the body's visible text.
func BodyText(limit int) Strategy {
	return Strategy{
		Name: "body",
		Find: func(doc *goquery.Document) (string, bool) {
			body := doc.Find("body").First()
			if body.Length() == 0 {
				return "", false
			}
			text := truncateRunes(visibleText(body.Nodes[0]), limit)
			return text, text != ""
		},
	}
}

// BodyTextLimit is the number of runes taken by the body fallback.
const BodyTextLimit = 500

// TextStrategies is the default chain for the post body text.
var TextStrategies = []Strategy{
	FirstText(`div[data-testid="tweetText"]`),
	FirstText(`div[lang]`),
	FirstText(`p[dir="ltr"]`),
	FirstText(`div[data-text="true"]`),
	MetaContent("description"),
	BodyText(BodyTextLimit),
}

// AuthorStrategies is the default chain for the author handle.
var AuthorStrategies = []Strategy{
	FirstTextWithPrefix(`a[data-testid="User-Name"]`, "@"),
	FirstTextWithPrefix(`a[href^="/"]`, "@"),
	FirstTextWithPrefix(`span[dir="ltr"]`, "@"),
}

// VideoStrategies is the default chain for the video source.
var VideoStrategies = []Strategy{
	FirstAttr(`video[src]`, "src"),
	FirstAttr(`video source[src]`, "src"),
}

// ImageSelectors are unioned in order to collect image sources.
var ImageSelectors = []string{
	`img[alt*="Image"]`,
	`img[src*="pbs.twimg.com"]`,
	`img[data-testid="tweetPhoto"]`,
}

// MediaHost identifies image sources that belong to a post.
const MediaHost = "pbs.twimg.com"

// Engagement markers; the counter is read from the marker's parent.
const (
	LikeMarker    = `[data-testid="like"]`
	RetweetMarker = `[data-testid="retweet"]`
	ReplyMarker   = `[data-testid="reply"]`
)
