// Package analyze provides the comment-generation pipeline.
// It coordinates URL validation, fetching, extraction, prompt building,
// generation and response parsing for a single post.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/IvanM-GM/replygen"
)

// Compile-time interface verification.
var _ replygen.PostAnalyzer = (*Analyzer)(nil)

// Sentiment generation settings.
const (
	SentimentMaxTokens   = 200
	SentimentTemperature = float32(0.3)
)

// Analyzer runs the analysis pipeline. Fetcher and Generator are shared
// across calls; an Analyzer holds no per-request state.
type Analyzer struct {
	Fetcher   replygen.Fetcher
	Extractor replygen.PostExtractor
	Generator replygen.Generator

	// MaxTokens and Temperature apply to comment generation. Zero values
	// select replygen.DefaultMaxTokens and replygen.DefaultTemperature.
	MaxTokens   int
	Temperature float32

	// FetchTimeout and GenerateTimeout bound the two blocking steps.
	// Zero means no bound beyond the caller's context.
	FetchTimeout    time.Duration
	GenerateTimeout time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Analyze validates url, fetches and extracts the post, and generates
// commentCount comments. A commentCount of zero or less requests
// replygen.DefaultCommentCount.
func (a *Analyzer) Analyze(ctx context.Context, url string, commentCount int) (result *replygen.Analysis, err error) {
	start := a.now()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = replygen.Errorf(replygen.EINTERNAL, "analysis panicked: %v", r)
		}
		if err != nil {
			err = &replygen.ElapsedError{Err: err, Elapsed: a.now().Sub(start)}
		}
	}()

	if commentCount <= 0 {
		commentCount = replygen.DefaultCommentCount
	}

	post, err := a.post(ctx, url)
	if err != nil {
		return nil, err
	}

	req := replygen.NewCommentRequest(post, commentCount)
	raw, err := a.generate(ctx, replygen.GenerateRequest{
		System:      replygen.SystemPrompt,
		Prompt:      replygen.BuildPrompt(req),
		MaxTokens:   a.maxTokens(),
		Temperature: a.temperature(),
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	res, err := replygen.ParseCommentResponse(raw)
	if err != nil {
		return nil, err
	}
	res.GeneratedAt = a.now()

	return &replygen.Analysis{
		Post:        post,
		Comments:    res.Comments,
		Analysis:    res.Analysis,
		GeneratedAt: res.GeneratedAt,
		Elapsed:     a.now().Sub(start),
	}, nil
}

// Post validates url and returns the extracted post without generation.
func (a *Analyzer) Post(ctx context.Context, url string) (post *replygen.Post, err error) {
	defer func() {
		if r := recover(); r != nil {
			post = nil
			err = replygen.Errorf(replygen.EINTERNAL, "extraction panicked: %v", r)
		}
	}()
	return a.post(ctx, url)
}

// Sentiment classifies text. Any failure yields the default report.
func (a *Analyzer) Sentiment(ctx context.Context, text string) (report replygen.SentimentReport) {
	defer func() {
		if r := recover(); r != nil {
			report = replygen.DefaultSentimentReport()
		}
	}()

	raw, err := a.generate(ctx, replygen.GenerateRequest{
		Prompt:      replygen.BuildSentimentPrompt(text),
		MaxTokens:   SentimentMaxTokens,
		Temperature: SentimentTemperature,
		JSON:        true,
	})
	if err != nil {
		return replygen.DefaultSentimentReport()
	}
	return replygen.ParseSentimentResponse(raw)
}

// Healthy reports whether the generation backend answers.
func (a *Analyzer) Healthy(ctx context.Context) bool {
	return a.Generator.ConnectionHealthy(ctx)
}

func (a *Analyzer) post(ctx context.Context, url string) (*replygen.Post, error) {
	if !replygen.ValidatePostURL(url) {
		return nil, replygen.Errorf(replygen.EINVALIDURL, "invalid post URL: %q", url)
	}

	html, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	post, err := a.Extractor.Extract(html, url)
	if err != nil {
		if replygen.IsTagged(err) {
			return nil, err
		}
		return nil, replygen.Errorf(replygen.EEXTRACT, "failed to extract post: %v", err)
	}
	if post.Empty() {
		return nil, replygen.Errorf(replygen.ENOTFOUND, "no post content found at %s", url)
	}
	return post, nil
}

func (a *Analyzer) fetch(ctx context.Context, url string) (string, error) {
	if a.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.FetchTimeout)
		defer cancel()
	}

	html, err := a.Fetcher.Fetch(ctx, url)
	if err == nil {
		return html, nil
	}
	if replygen.IsTagged(err) {
		return "", err
	}
	if isTimeout(err) {
		return "", replygen.Errorf(replygen.ETIMEOUT, "fetching %s timed out", url)
	}
	return "", replygen.Errorf(replygen.EFETCH, "failed to fetch %s: %v", url, err)
}

func (a *Analyzer) generate(ctx context.Context, req replygen.GenerateRequest) (string, error) {
	if a.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.GenerateTimeout)
		defer cancel()
	}

	raw, err := a.Generator.GenerateText(ctx, req)
	if err == nil {
		return raw, nil
	}
	if replygen.IsTagged(err) {
		return "", err
	}
	return "", replygen.Errorf(replygen.EGENERATE, "generation failed: %v", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func (a *Analyzer) maxTokens() int {
	if a.MaxTokens > 0 {
		return a.MaxTokens
	}
	return replygen.DefaultMaxTokens
}

func (a *Analyzer) temperature() float32 {
	if a.Temperature > 0 {
		return a.Temperature
	}
	return replygen.DefaultTemperature
}

func (a *Analyzer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// String describes the analyzer configuration for logs.
func (a *Analyzer) String() string {
	return fmt.Sprintf("analyzer(max_tokens=%d, temperature=%.2f, fetch_timeout=%s, generate_timeout=%s)",
		a.maxTokens(), a.temperature(), a.FetchTimeout, a.GenerateTimeout)
}
