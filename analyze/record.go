package analyze

import (
	"context"
	"log/slog"

	"github.com/IvanM-GM/replygen"
)

// Compile-time interface verification.
var _ replygen.PostAnalyzer = (*RecordingAnalyzer)(nil)

// RecordingAnalyzer stores every successful analysis in the history.
// Storage failures are logged and never fail the analysis.
type RecordingAnalyzer struct {
	replygen.PostAnalyzer

	Analyses replygen.AnalysisService
	Logger   *slog.Logger
}

// NewRecordingAnalyzer wraps next so successful analyses are recorded.
func NewRecordingAnalyzer(next replygen.PostAnalyzer, analyses replygen.AnalysisService, logger *slog.Logger) *RecordingAnalyzer {
	return &RecordingAnalyzer{PostAnalyzer: next, Analyses: analyses, Logger: logger}
}

// Analyze runs the wrapped analyzer and records the result.
func (r *RecordingAnalyzer) Analyze(ctx context.Context, url string, commentCount int) (*replygen.Analysis, error) {
	a, err := r.PostAnalyzer.Analyze(ctx, url, commentCount)
	if err != nil {
		return nil, err
	}

	rec := replygen.NewAnalysisRecord(a)
	if err := r.Analyses.CreateAnalysis(ctx, rec); err != nil && r.Logger != nil {
		r.Logger.Warn("record analysis", "url", url, "err", err)
	}
	return a, nil
}
