package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/sermon-archive-search-api/internal/models"
	"github.com/sermon-archive-search-api/internal/repository"
	"github.com/sermon-archive-search-api/internal/scripture"
)

// Field weights. Title matches are a far stronger relevance signal than
// incidental transcript mentions; the ordering title > description >
// transcript is load-bearing, the exact constants are tuning.
const (
	titleWeight       = 50.0
	descriptionWeight = 5.0
	transcriptWeight  = 1.0
)

// Scripture boost tiers, highest specificity wins. A document whose main
// subject is the queried passage outranks one that merely mentions it, and an
// exact verse hit outranks a chapter-level hit.
const (
	boostExactVerse      = 700.0
	boostPrimarySpecific = 500.0
	boostPrimaryBook     = 200.0
	boostSecondary       = 50.0
)

// Series aggregation constants.
const (
	seriesNameBonus        = 25.0
	seriesDampingThreshold = 20
	seriesDampingFactor    = 0.5
)

// Pagination defaults.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// RelevanceService ranks archive documents against a free-text query,
// recognizing scripture references and boosting tagged documents.
type RelevanceService struct {
	repo repository.DocumentRepository
}

// NewRelevanceService creates a new relevance service
func NewRelevanceService(repo repository.DocumentRepository) *RelevanceService {
	return &RelevanceService{repo: repo}
}

// Search parses the query for a scripture reference, fetches candidates in a
// single store call, scores and orders them, and returns one page. An empty
// or whitespace-only query yields an empty result set, not an error.
func (s *RelevanceService) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	resp := &models.SearchResponse{Query: req.Query, Results: []models.RankedResult{}}
	if query == "" {
		return resp, nil
	}

	ref, _ := scripture.Parse(query)
	if ref != nil {
		resp.Scripture = &models.ScriptureInfo{Book: ref.Book, Chapter: ref.Chapter, Verse: ref.Verse}
	}

	docs, err := s.repo.FindCandidates(ctx, req.Filters)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	ranked := make([]models.RankedResult, 0, len(docs))
	for _, doc := range docs {
		score, counts := scoreDocument(lower, ref, &doc)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, models.RankedResult{
			Document:       doc,
			RelevanceScore: score,
			MatchCounts:    counts,
		})
	}

	sortResults(ranked, models.NormalizeSortMode(req.Sort))

	limit, offset := clampPage(req.Limit, req.Offset)
	page, hasMore := pageOf(ranked, limit, offset)
	resp.Results = page
	resp.HasMore = hasMore
	return resp, nil
}

// SearchSeries ranks series as units. A series scores by a flat bonus when
// its own name matches, plus the sum of member scores scaled by the
// proportion of members that matched and damped for very large series.
func (s *RelevanceService) SearchSeries(ctx context.Context, req models.SearchRequest) ([]models.RankedSeries, bool, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return []models.RankedSeries{}, false, nil
	}

	ref, _ := scripture.Parse(query)

	series, err := s.repo.FindSeries(ctx, req.Filters)
	if err != nil {
		return nil, false, err
	}

	lower := strings.ToLower(query)
	ranked := make([]models.RankedSeries, 0, len(series))
	for _, sr := range series {
		score, matched := scoreSeries(lower, ref, sr)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, models.RankedSeries{
			Series:         sr,
			RelevanceScore: score,
			MatchedMembers: matched,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RelevanceScore != ranked[j].RelevanceScore {
			return ranked[i].RelevanceScore > ranked[j].RelevanceScore
		}
		return ranked[i].Series.Name < ranked[j].Series.Name
	})

	limit, offset := clampPage(req.Limit, req.Offset)
	page, hasMore := pageOfSeries(ranked, limit, offset)
	return page, hasMore, nil
}

// scoreDocument computes the weighted term-frequency sum plus the scripture
// boost. A document with no textual overlap is still a candidate when it
// carries a matching tag, so "Romans 8:1" surfaces sermons whose transcript
// never contains that literal string.
func scoreDocument(lowerQuery string, ref *scripture.Reference, doc *models.Document) (float64, models.MatchCounts) {
	counts := models.MatchCounts{
		Title:       countOccurrences(doc.Title, lowerQuery),
		Description: countOccurrences(doc.Description, lowerQuery),
		Transcript:  countOccurrences(doc.TranscriptText, lowerQuery),
	}
	score := titleWeight*float64(counts.Title) +
		descriptionWeight*float64(counts.Description) +
		transcriptWeight*float64(counts.Transcript)
	score += scriptureBoost(ref, doc)
	return score, counts
}

// countOccurrences counts case-insensitive substring occurrences of the query
// in text. Partial-word matches count; that is the documented behavior of the
// scorer, not tokenized term frequency.
func countOccurrences(text, lowerQuery string) int {
	if text == "" || lowerQuery == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), lowerQuery)
}

// scriptureBoost returns the tiered boost for a parsed reference against the
// document's tags. Tiers collapse when the reference has no verse or no
// chapter; the primary tag (first by stored order) outranks secondary tags at
// equal specificity.
func scriptureBoost(ref *scripture.Reference, doc *models.Document) float64 {
	if ref == nil || len(doc.ScriptureTags) == 0 {
		return 0
	}
	primary := doc.PrimaryTag()

	switch {
	case ref.Verse > 0:
		for _, tag := range doc.ScriptureTags {
			if tagContainsVerse(tag, ref) {
				return boostExactVerse
			}
		}
		if primary.Book == ref.Book && primary.Chapter == ref.Chapter {
			return boostPrimarySpecific
		}
		if primary.Book == ref.Book {
			return boostPrimaryBook
		}
		if anyTagMatchesChapter(doc.ScriptureTags, ref) {
			return boostSecondary
		}
	case ref.Chapter > 0:
		if primary.Book == ref.Book && primary.Chapter == ref.Chapter {
			return boostPrimarySpecific
		}
		if primary.Book == ref.Book {
			return boostPrimaryBook
		}
		if anyTagMatchesChapter(doc.ScriptureTags, ref) {
			return boostSecondary
		}
	default:
		if primary.Book == ref.Book {
			return boostPrimarySpecific
		}
		for _, tag := range doc.ScriptureTags {
			if tag.Book == ref.Book {
				return boostSecondary
			}
		}
	}
	return 0
}

// tagContainsVerse reports whether a tag's verse range contains the queried
// verse. A tag without a verse range denotes a whole chapter and never counts
// as an exact verse hit; it still earns the chapter-level tiers.
func tagContainsVerse(tag models.ScriptureTag, ref *scripture.Reference) bool {
	if tag.Book != ref.Book || tag.Chapter != ref.Chapter {
		return false
	}
	if tag.VerseStart == 0 {
		return false
	}
	if tag.VerseEnd == 0 {
		return ref.Verse == tag.VerseStart
	}
	return ref.Verse >= tag.VerseStart && ref.Verse <= tag.VerseEnd
}

func anyTagMatchesChapter(tags []models.ScriptureTag, ref *scripture.Reference) bool {
	for _, tag := range tags {
		if tag.Book == ref.Book && tag.Chapter == ref.Chapter {
			return true
		}
	}
	return false
}

// scoreSeries aggregates member scores. The proportion factor rewards series
// where the topic pervades rather than appearing in one episode; the damping
// factor keeps a 200-sermon series from dominating purely by volume.
func scoreSeries(lowerQuery string, ref *scripture.Reference, sr models.Series) (float64, int) {
	var nameBonus float64
	if strings.Contains(strings.ToLower(sr.Name), lowerQuery) {
		nameBonus = seriesNameBonus
	}

	total := len(sr.Members)
	if total == 0 {
		return nameBonus, 0
	}

	var memberSum float64
	matched := 0
	for i := range sr.Members {
		score, _ := scoreDocument(lowerQuery, ref, &sr.Members[i])
		if score > 0 {
			matched++
			memberSum += score
		}
	}

	proportion := float64(matched) / float64(total)
	damping := 1.0
	if total > seriesDampingThreshold {
		damping = 1.0 / (1.0 + seriesDampingFactor*math.Log(float64(total)/float64(seriesDampingThreshold)))
	}
	return nameBonus + memberSum*proportion*damping, matched
}

// sortResults orders by the requested mode. Relevance ties break newest-first
// so identical scores have a stable, meaningful order.
func sortResults(results []models.RankedResult, mode models.SortMode) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch mode {
		case models.SortNewest:
			return a.Document.PreachedAt.After(b.Document.PreachedAt)
		case models.SortOldest:
			return a.Document.PreachedAt.Before(b.Document.PreachedAt)
		default:
			if a.RelevanceScore != b.RelevanceScore {
				return a.RelevanceScore > b.RelevanceScore
			}
			return a.Document.PreachedAt.After(b.Document.PreachedAt)
		}
	})
}

// clampPage normalizes pagination to safe defaults; negative values usually
// come from stale bookmarked query strings.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// pageOf returns one page using the fetch-N-plus-one idiom: the page boundary
// is detected by the presence of a following item, never by a total count.
func pageOf(ranked []models.RankedResult, limit, offset int) ([]models.RankedResult, bool) {
	if offset >= len(ranked) {
		return []models.RankedResult{}, false
	}
	window := ranked[offset:]
	if len(window) > limit {
		return window[:limit:limit], true
	}
	return window, false
}

func pageOfSeries(ranked []models.RankedSeries, limit, offset int) ([]models.RankedSeries, bool) {
	if offset >= len(ranked) {
		return []models.RankedSeries{}, false
	}
	window := ranked[offset:]
	if len(window) > limit {
		return window[:limit:limit], true
	}
	return window, false
}
