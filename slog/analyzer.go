package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/IvanM-GM/replygen"
)

// Ensure LoggingAnalyzer implements replygen.PostAnalyzer.
var _ replygen.PostAnalyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps a PostAnalyzer with one log line per call.
type LoggingAnalyzer struct {
	next   replygen.PostAnalyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next replygen.PostAnalyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, url string, commentCount int) (result *replygen.Analysis, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"requested", commentCount,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", replygen.ErrorCode(err), "err", err)
			a.logger.Warn("analyze", attrs...)
			return
		}
		attrs = append(attrs,
			"comments", len(result.Comments),
			"sentiment", result.Analysis.Sentiment,
		)
		a.logger.Info("analyze", attrs...)
	}(time.Now())
	return a.next.Analyze(ctx, url, commentCount)
}

// Post delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Post(ctx context.Context, url string) (post *replygen.Post, err error) {
	defer func(begin time.Time) {
		a.logger.Info("post",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Post(ctx, url)
}

// Sentiment delegates to the wrapped analyzer and logs the classification.
func (a *LoggingAnalyzer) Sentiment(ctx context.Context, text string) (report replygen.SentimentReport) {
	defer func(begin time.Time) {
		a.logger.Info("sentiment",
			"chars", len(text),
			"sentiment", report.Sentiment,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Sentiment(ctx, text)
}

// Healthy delegates to the wrapped analyzer.
func (a *LoggingAnalyzer) Healthy(ctx context.Context) bool {
	return a.next.Healthy(ctx)
}
