package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sermon-archive-search-api/internal/models"
	"github.com/sermon-archive-search-api/internal/repository"
)

// DocumentRepository implements repository.DocumentRepository for PostgreSQL
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new PostgreSQL document repository
func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &DocumentRepository{db: db}
}

const sermonColumns = `s.id, s.title, COALESCE(s.description, '') AS description,
       COALESCE(s.transcript_text, '') AS transcript_text,
       COALESCE(s.sermon_type, '') AS sermon_type, COALESCE(s.category, '') AS category,
       s.has_outline, s.preached_at`

// FindCandidates returns documents passing the filters with their scripture
// tags attached in insertion order.
func (r *DocumentRepository) FindCandidates(ctx context.Context, filters models.SearchFilters) ([]models.Document, error) {
	where, args := buildFilterClause(filters)

	query := `SELECT ` + sermonColumns + ` FROM sermons s` + where + ` ORDER BY s.preached_at DESC, s.id`

	var docs []models.Document
	if err := r.db.SelectContext(ctx, &docs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find candidates: %w: %v", repository.ErrUnavailable, err)
	}
	if docs == nil {
		docs = []models.Document{}
	}
	if err := r.attachTags(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CountCandidates returns the number of documents passing the filters.
func (r *DocumentRepository) CountCandidates(ctx context.Context, filters models.SearchFilters) (int, error) {
	where, args := buildFilterClause(filters)

	var count int
	query := `SELECT COUNT(*) FROM sermons s` + where
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count candidates: %w: %v", repository.ErrUnavailable, err)
	}
	return count, nil
}

// FindSeries returns series whose members pass the filters, members attached.
func (r *DocumentRepository) FindSeries(ctx context.Context, filters models.SearchFilters) ([]models.Series, error) {
	where, args := buildFilterClause(filters)

	query := `SELECT sr.id AS series_id, sr.name AS series_name, ` + sermonColumns + `
		FROM series sr
		JOIN sermons s ON s.series_id = sr.id` + where + `
		ORDER BY sr.name, s.preached_at, s.id`

	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("find series: %w: %v", repository.ErrUnavailable, err)
	}
	defer rows.Close()

	var result []models.Series
	index := make(map[string]int)
	for rows.Next() {
		var row struct {
			SeriesID   string `db:"series_id"`
			SeriesName string `db:"series_name"`
			models.Document
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan series row: %w", err)
		}
		i, ok := index[row.SeriesID]
		if !ok {
			i = len(result)
			index[row.SeriesID] = i
			result = append(result, models.Series{ID: row.SeriesID, Name: row.SeriesName})
		}
		result[i].Members = append(result[i].Members, row.Document)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series rows: %w: %v", repository.ErrUnavailable, err)
	}

	if result == nil {
		result = []models.Series{}
	}
	if err := r.attachSeriesTags(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetTranscript returns the transcript text of one sermon.
func (r *DocumentRepository) GetTranscript(ctx context.Context, sermonID string) (string, error) {
	var transcript string
	err := r.db.GetContext(ctx, &transcript,
		r.db.Rebind(`SELECT COALESCE(transcript_text, '') FROM sermons WHERE id = ?`), sermonID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("sermon %s: %w", sermonID, repository.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get transcript: %w: %v", repository.ErrUnavailable, err)
	}
	return transcript, nil
}

// ListDimensionValues returns the distinct values of a browse dimension. The
// attribute name comes from the static dimension registry, never from user
// input, so it is safe to interpolate.
func (r *DocumentRepository) ListDimensionValues(ctx context.Context, attribute string, scalar bool) ([]models.DimensionValue, error) {
	var query string
	var args []interface{}
	if scalar {
		query = fmt.Sprintf(`SELECT %s AS value, COUNT(*) AS count
			FROM sermons WHERE COALESCE(%s, '') <> ''
			GROUP BY value ORDER BY count DESC, value`, attribute, attribute)
	} else {
		query = `SELECT value, COUNT(*) AS count
			FROM sermon_attributes WHERE attribute = ?
			GROUP BY value ORDER BY count DESC, value`
		args = append(args, attribute)
	}

	var values []models.DimensionValue
	if err := r.db.SelectContext(ctx, &values, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list dimension values: %w: %v", repository.ErrUnavailable, err)
	}
	if values == nil {
		values = []models.DimensionValue{}
	}
	return values, nil
}

// buildFilterClause turns filters into a WHERE clause with ? placeholders.
func buildFilterClause(filters models.SearchFilters) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filters.HasTranscript {
		conds = append(conds, "COALESCE(s.transcript_text, '') <> ''")
	}
	if filters.HasOutline {
		conds = append(conds, "s.has_outline")
	}
	if filters.SermonType != "" {
		conds = append(conds, "s.sermon_type = ?")
		args = append(args, filters.SermonType)
	}
	if filters.Category != "" {
		conds = append(conds, "s.category = ?")
		args = append(args, filters.Category)
	}
	if filters.Decade > 0 {
		conds = append(conds, "EXTRACT(YEAR FROM s.preached_at) >= ? AND EXTRACT(YEAR FROM s.preached_at) < ?")
		args = append(args, filters.Decade, filters.Decade+10)
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// attachTags loads scripture tags for the given documents in one query.
func (r *DocumentRepository) attachTags(ctx context.Context, docs []models.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	index := make(map[string]int, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		index[d.ID] = i
	}

	query, args, err := sqlx.In(`SELECT sermon_id, book, chapter,
			COALESCE(verse_start, 0) AS verse_start, COALESCE(verse_end, 0) AS verse_end
		FROM scripture_tags WHERE sermon_id IN (?) ORDER BY sermon_id, position`, ids)
	if err != nil {
		return fmt.Errorf("build tag query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("fetch scripture tags: %w: %v", repository.ErrUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row struct {
			SermonID string `db:"sermon_id"`
			models.ScriptureTag
		}
		if err := rows.StructScan(&row); err != nil {
			return fmt.Errorf("scan scripture tag: %w", err)
		}
		if i, ok := index[row.SermonID]; ok {
			docs[i].ScriptureTags = append(docs[i].ScriptureTags, row.ScriptureTag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate scripture tags: %w: %v", repository.ErrUnavailable, err)
	}
	return nil
}

func (r *DocumentRepository) attachSeriesTags(ctx context.Context, series []models.Series) error {
	for i := range series {
		if err := r.attachTags(ctx, series[i].Members); err != nil {
			return err
		}
	}
	return nil
}
