package replygen

import (
	"context"
	"encoding/json"
	"math"
	"time"
)

// Analysis is the assembled outcome of one analyze call.
type Analysis struct {
	Post        *Post
	Comments    []string
	Analysis    PostAnalysis
	GeneratedAt time.Time

	// Elapsed is the wall-clock time from entry to assembly.
	Elapsed time.Duration
}

// MarshalJSON renders Elapsed as processingTime in seconds.
func (a *Analysis) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Post           *Post        `json:"post"`
		Comments       []string     `json:"comments"`
		Analysis       PostAnalysis `json:"analysis"`
		GeneratedAt    time.Time    `json:"generatedAt"`
		ProcessingTime float64      `json:"processingTime"`
	}{
		Post:           a.Post,
		Comments:       a.Comments,
		Analysis:       a.Analysis,
		GeneratedAt:    a.GeneratedAt,
		ProcessingTime: RoundSeconds(a.Elapsed),
	})
}

// RoundSeconds converts d to seconds rounded to two decimals.
func RoundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

// PostAnalyzer runs the analysis pipeline for a post URL.
type PostAnalyzer interface {
	// Analyze validates url, fetches and extracts the post, generates
	// commentCount comments and returns the assembled result.
	// On failure the error carries the elapsed time (see ErrorElapsed).
	Analyze(ctx context.Context, url string, commentCount int) (*Analysis, error)

	// Post validates url and returns the extracted post without generation.
	Post(ctx context.Context, url string) (*Post, error)

	// Sentiment classifies text. Never fails; returns the default report
	// when generation or decoding fails.
	Sentiment(ctx context.Context, text string) SentimentReport

	// Healthy reports whether the generation backend is reachable.
	Healthy(ctx context.Context) bool
}

// AnalysisRecord is a persisted history entry for a completed analysis.
type AnalysisRecord struct {
	ID            string       `json:"id"`
	PostURL       string       `json:"postUrl"`
	PostID        string       `json:"postId"`
	Author        string       `json:"author"`
	Text          string       `json:"text"`
	TextHash      string       `json:"textHash"`
	Comments      []string     `json:"comments"`
	Analysis      PostAnalysis `json:"analysis"`
	ElapsedMillis int64        `json:"elapsedMillis"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// NewAnalysisRecord builds a history entry from a completed analysis.
// ID, TextHash and CreatedAt are assigned by the AnalysisService.
func NewAnalysisRecord(a *Analysis) *AnalysisRecord {
	rec := &AnalysisRecord{
		Comments:      a.Comments,
		Analysis:      a.Analysis,
		ElapsedMillis: a.Elapsed.Milliseconds(),
	}
	if a.Post != nil {
		rec.PostURL = a.Post.URL
		rec.PostID, _ = PostIDFromURL(a.Post.URL)
		rec.Author = a.Post.Author
		rec.Text = a.Post.Text
	}
	return rec
}

// Validate returns an error if the record contains invalid fields.
func (r *AnalysisRecord) Validate() error {
	if r.PostURL == "" {
		return Errorf(EINVALID, "analysis post URL required")
	}
	if len(r.Comments) > MaxComments {
		return Errorf(EINVALID, "analysis has %d comments, at most %d allowed", len(r.Comments), MaxComments)
	}
	return nil
}

// AnalysisFilter represents a filter for FindAnalyses.
type AnalysisFilter struct {
	ID     *string `json:"id"`
	PostID *string `json:"postId"`
	Author *string `json:"author"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AnalysisService represents a service for managing analysis history.
type AnalysisService interface {
	// CreateAnalysis stores a new record, assigning its ID and timestamp.
	CreateAnalysis(ctx context.Context, rec *AnalysisRecord) error

	// FindAnalysisByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindAnalysisByID(ctx context.Context, id string) (*AnalysisRecord, error)

	// FindAnalyses retrieves records matching the filter, newest first.
	FindAnalyses(ctx context.Context, filter AnalysisFilter) ([]*AnalysisRecord, error)
}

// ReportWriter renders completed analyses to durable reports.
type ReportWriter interface {
	// WriteReport writes a and returns the location it was written to.
	WriteReport(ctx context.Context, a *Analysis) (path string, err error)
}
