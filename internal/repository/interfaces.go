package repository

import (
	"context"
	"errors"

	"github.com/sermon-archive-search-api/internal/models"
)

// ErrUnavailable wraps store failures so callers can distinguish "search could
// not run" from "search ran and found nothing".
var ErrUnavailable = errors.New("document store unavailable")

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// DocumentRepository defines read access to the sermon archive. The search
// core treats the store as an external collaborator; each search performs a
// single candidate fetch.
type DocumentRepository interface {
	// FindCandidates returns documents passing the filters, scripture tags
	// attached in insertion order.
	FindCandidates(ctx context.Context, filters models.SearchFilters) ([]models.Document, error)

	// CountCandidates returns the number of documents passing the filters.
	CountCandidates(ctx context.Context, filters models.SearchFilters) (int, error)

	// FindSeries returns series whose members pass the filters, members
	// attached.
	FindSeries(ctx context.Context, filters models.SearchFilters) ([]models.Series, error)

	// GetTranscript returns the transcript text of one sermon.
	GetTranscript(ctx context.Context, sermonID string) (string, error)

	// ListDimensionValues returns the distinct values of a browse dimension
	// with document counts.
	ListDimensionValues(ctx context.Context, attribute string, scalar bool) ([]models.DimensionValue, error)
}
