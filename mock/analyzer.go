package mock

import (
	"context"

	"github.com/IvanM-GM/replygen"
)

var _ replygen.PostAnalyzer = (*PostAnalyzer)(nil)

// PostAnalyzer is a mock implementation of replygen.PostAnalyzer.
type PostAnalyzer struct {
	AnalyzeFn   func(ctx context.Context, url string, commentCount int) (*replygen.Analysis, error)
	PostFn      func(ctx context.Context, url string) (*replygen.Post, error)
	SentimentFn func(ctx context.Context, text string) replygen.SentimentReport
	HealthyFn   func(ctx context.Context) bool
}

func (a *PostAnalyzer) Analyze(ctx context.Context, url string, commentCount int) (*replygen.Analysis, error) {
	return a.AnalyzeFn(ctx, url, commentCount)
}

func (a *PostAnalyzer) Post(ctx context.Context, url string) (*replygen.Post, error) {
	return a.PostFn(ctx, url)
}

func (a *PostAnalyzer) Sentiment(ctx context.Context, text string) replygen.SentimentReport {
	return a.SentimentFn(ctx, text)
}

func (a *PostAnalyzer) Healthy(ctx context.Context) bool {
	return a.HealthyFn(ctx)
}
