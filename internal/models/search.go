package models

import "time"

// ScriptureTag is a structured scripture annotation attached to a document,
// distinct from free-text mentions. VerseStart/VerseEnd are zero when the tag
// covers a whole chapter; VerseEnd zero with VerseStart set means a single
// verse. Tags keep insertion order; the first tag is the document's primary
// reference.
type ScriptureTag struct {
	Book       string `json:"book" db:"book"`
	Chapter    int    `json:"chapter" db:"chapter"`
	VerseStart int    `json:"verse_start,omitempty" db:"verse_start"`
	VerseEnd   int    `json:"verse_end,omitempty" db:"verse_end"`
}

// Document is a sermon as stored in the archive. The search core treats it as
// read-only input.
type Document struct {
	ID             string         `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description,omitempty" db:"description"`
	TranscriptText string         `json:"-" db:"transcript_text"`
	SermonType     string         `json:"sermon_type,omitempty" db:"sermon_type"`
	Category       string         `json:"category,omitempty" db:"category"`
	HasOutline     bool           `json:"has_outline" db:"has_outline"`
	PreachedAt     time.Time      `json:"preached_at" db:"preached_at"`
	ScriptureTags  []ScriptureTag `json:"scripture_tags,omitempty"`
}

// PrimaryTag returns the document's primary scripture reference, or nil when
// the document carries no tags.
func (d *Document) PrimaryTag() *ScriptureTag {
	if len(d.ScriptureTags) == 0 {
		return nil
	}
	return &d.ScriptureTags[0]
}

// Series is a container of member sermons ranked as a unit.
type Series struct {
	ID      string     `json:"id" db:"id"`
	Name    string     `json:"name" db:"name"`
	Members []Document `json:"members,omitempty"`
}

// MatchCounts records per-field occurrence counts for one ranked document.
type MatchCounts struct {
	Title       int `json:"title"`
	Description int `json:"description"`
	Transcript  int `json:"transcript"`
}

// RankedResult pairs a document with its relevance score. Created per search
// call; never persisted.
type RankedResult struct {
	Document       Document    `json:"document"`
	RelevanceScore float64     `json:"relevance_score"`
	MatchCounts    MatchCounts `json:"match_counts"`
}

// RankedSeries pairs a series with its aggregated relevance score.
type RankedSeries struct {
	Series         Series  `json:"series"`
	RelevanceScore float64 `json:"relevance_score"`
	MatchedMembers int     `json:"matched_members"`
}

// Snippet is a short highlighted excerpt of transcript text. Text carries
// <mark> spans around matched terms; Position is the excerpt's byte offset in
// the source text.
type Snippet struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// SortMode selects result ordering.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
)

// NormalizeSortMode maps unknown sort keys to the default; stale bookmarked
// query strings are common enough that rejection would be unfriendly.
func NormalizeSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortNewest:
		return SortNewest
	case SortOldest:
		return SortOldest
	default:
		return SortRelevance
	}
}

// SearchFilters are hard inclusion predicates applied before scoring; they
// never influence the score itself.
type SearchFilters struct {
	HasTranscript bool   `json:"has_transcript,omitempty"`
	HasOutline    bool   `json:"has_outline,omitempty"`
	SermonType    string `json:"sermon_type,omitempty"`
	Category      string `json:"category,omitempty"`
	Decade        int    `json:"decade,omitempty"`
}

// SearchRequest is the request for relevance search.
type SearchRequest struct {
	Query   string        `json:"query"`
	Filters SearchFilters `json:"filters"`
	Sort    string        `json:"sort"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// SearchResponse is the response for relevance search.
type SearchResponse struct {
	Query     string         `json:"query"`
	Scripture *ScriptureInfo `json:"scripture,omitempty"`
	Results   []RankedResult `json:"results"`
	HasMore   bool           `json:"has_more"`
}

// ScriptureInfo echoes the reference the query parsed to, when it parsed.
type ScriptureInfo struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`
}

// SnippetRequest is the request for transcript snippet extraction.
type SnippetRequest struct {
	SermonID      string `json:"sermon_id" validate:"required"`
	Query         string `json:"query"`
	MaxSnippets   int    `json:"max_snippets" validate:"gte=0,lte=10"`
	SnippetLength int    `json:"snippet_length" validate:"gte=0,lte=2000"`
}

// SnippetResponse is the response for transcript snippet extraction.
type SnippetResponse struct {
	SermonID string    `json:"sermon_id"`
	Query    string    `json:"query"`
	Snippets []Snippet `json:"snippets"`
}

// DimensionValue is one distinct value of a browse dimension with its
// document count.
type DimensionValue struct {
	Value string `json:"value" db:"value"`
	Count int    `json:"count" db:"count"`
}
