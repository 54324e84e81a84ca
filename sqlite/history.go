package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/grabdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ grabdoc.HistoryService = (*HistoryService)(nil)

// HistoryService implements grabdoc.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateExtraction records a completed extraction run.
func (s *HistoryService) CreateExtraction(ctx context.Context, extraction *grabdoc.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	extraction.ID = uuid.New().String()
	extraction.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, url, resource_type, output_dir, content_hash, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, extraction.ID, extraction.URL, extraction.ResourceType, extraction.OutputDir,
		extraction.ContentHash, extraction.Success, extraction.CreatedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByURL retrieves the most recent extraction of url.
func (s *HistoryService) FindExtractionByURL(ctx context.Context, url string) (*grabdoc.Extraction, error) {
	var extraction grabdoc.Extraction
	var createdAt string

	// created_at has second granularity; rowid breaks ties in insert order.
	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, resource_type, output_dir, content_hash, success, created_at
		FROM extractions
		WHERE url = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, url).Scan(&extraction.ID, &extraction.URL, &extraction.ResourceType, &extraction.OutputDir,
		&extraction.ContentHash, &extraction.Success, &createdAt)

	if err == sql.ErrNoRows {
		return nil, grabdoc.Errorf(grabdoc.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}

	extraction.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &extraction, nil
}

// FindExtractions retrieves extractions matching the filter, most recent first.
func (s *HistoryService) FindExtractions(ctx context.Context, filter grabdoc.ExtractionFilter) ([]*grabdoc.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, resource_type, output_dir, content_hash, success, created_at FROM extractions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Success != nil {
		query.WriteString(" AND success = ?")
		args = append(args, *filter.Success)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*grabdoc.Extraction
	for rows.Next() {
		var extraction grabdoc.Extraction
		var createdAt string

		if err := rows.Scan(&extraction.ID, &extraction.URL, &extraction.ResourceType, &extraction.OutputDir,
			&extraction.ContentHash, &extraction.Success, &createdAt); err != nil {
			return nil, err
		}

		extraction.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		extractions = append(extractions, &extraction)
	}

	return extractions, rows.Err()
}
