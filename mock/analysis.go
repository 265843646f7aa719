package mock

import (
	"context"

	"github.com/IvanM-GM/replygen"
)

var _ replygen.AnalysisService = (*AnalysisService)(nil)

// AnalysisService is a mock implementation of replygen.AnalysisService.
type AnalysisService struct {
	CreateAnalysisFn   func(ctx context.Context, rec *replygen.AnalysisRecord) error
	FindAnalysisByIDFn func(ctx context.Context, id string) (*replygen.AnalysisRecord, error)
	FindAnalysesFn     func(ctx context.Context, filter replygen.AnalysisFilter) ([]*replygen.AnalysisRecord, error)
}

func (s *AnalysisService) CreateAnalysis(ctx context.Context, rec *replygen.AnalysisRecord) error {
	return s.CreateAnalysisFn(ctx, rec)
}

func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*replygen.AnalysisRecord, error) {
	return s.FindAnalysisByIDFn(ctx, id)
}

func (s *AnalysisService) FindAnalyses(ctx context.Context, filter replygen.AnalysisFilter) ([]*replygen.AnalysisRecord, error) {
	return s.FindAnalysesFn(ctx, filter)
}

var _ replygen.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of replygen.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, a *replygen.Analysis) (string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, a *replygen.Analysis) (string, error) {
	return w.WriteReportFn(ctx, a)
}
