package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IvanM-GM/replygen"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ replygen.AnalysisService = (*AnalysisService)(nil)

const analysisColumns = `id, post_url, post_id, author, text, text_hash, comments,
	tone, sentiment, topics, engagement_potential, elapsed_ms, created_at`

// AnalysisService implements replygen.AnalysisService using SQLite.
type AnalysisService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(db *DB) *AnalysisService {
	return &AnalysisService{db: db, Now: time.Now}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// CreateAnalysis stores rec, assigning its ID, text hash and timestamp.
func (s *AnalysisService) CreateAnalysis(ctx context.Context, rec *replygen.AnalysisRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = s.Now().UTC().Truncate(time.Second)
	rec.TextHash = hashContent(rec.Text)

	comments, err := encodeStrings(rec.Comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}
	topics, err := encodeStrings(rec.Analysis.Topics)
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.PostURL, rec.PostID, rec.Author, rec.Text, rec.TextHash, comments,
		rec.Analysis.Tone, rec.Analysis.Sentiment, topics, rec.Analysis.EngagementPotential,
		rec.ElapsedMillis, rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindAnalysisByID retrieves a record by ID.
func (s *AnalysisService) FindAnalysisByID(ctx context.Context, id string) (*replygen.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	rec, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, replygen.Errorf(replygen.ENOTFOUND, "analysis not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindAnalyses retrieves records matching the filter, newest first.
func (s *AnalysisService) FindAnalyses(ctx context.Context, filter replygen.AnalysisFilter) ([]*replygen.AnalysisRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + analysisColumns + " FROM analyses WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PostID != nil {
		query.WriteString(" AND post_id = ?")
		args = append(args, *filter.PostID)
	}
	if filter.Author != nil {
		query.WriteString(" AND author = ?")
		args = append(args, *filter.Author)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*replygen.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*replygen.AnalysisRecord, error) {
	var rec replygen.AnalysisRecord
	var comments, topics, createdAt string

	if err := row.Scan(&rec.ID, &rec.PostURL, &rec.PostID, &rec.Author, &rec.Text, &rec.TextHash,
		&comments, &rec.Analysis.Tone, &rec.Analysis.Sentiment, &topics, &rec.Analysis.EngagementPotential,
		&rec.ElapsedMillis, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if rec.Comments, err = decodeStrings(comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	if rec.Analysis.Topics, err = decodeStrings(topics); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func decodeStrings(s string) ([]string, error) {
	v := []string{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
