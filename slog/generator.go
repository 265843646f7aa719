package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/IvanM-GM/replygen"
)

// Ensure LoggingGenerator implements replygen.Generator.
var _ replygen.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with request logging.
// Prompts are not logged; only their sizes.
type LoggingGenerator struct {
	next   replygen.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next replygen.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// GenerateText delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) GenerateText(ctx context.Context, req replygen.GenerateRequest) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_chars", len(req.Prompt),
			"max_tokens", req.MaxTokens,
			"json", req.JSON,
			"response_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GenerateText(ctx, req)
}

// ConnectionHealthy delegates to the wrapped generator.
func (g *LoggingGenerator) ConnectionHealthy(ctx context.Context) (ok bool) {
	defer func() {
		g.logger.Debug("generator health", "healthy", ok)
	}()
	return g.next.ConnectionHealthy(ctx)
}

// Close delegates to the wrapped generator.
func (g *LoggingGenerator) Close() error {
	return g.next.Close()
}
