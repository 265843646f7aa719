package mock

import "github.com/IvanM-GM/replygen"

var _ replygen.PostExtractor = (*PostExtractor)(nil)

// PostExtractor is a mock implementation of replygen.PostExtractor.
type PostExtractor struct {
	ExtractFn func(html string, sourceURL string) (*replygen.Post, error)
}

func (e *PostExtractor) Extract(html string, sourceURL string) (*replygen.Post, error) {
	return e.ExtractFn(html, sourceURL)
}
