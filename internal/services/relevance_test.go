package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sermon-archive-search-api/internal/models"
	"github.com/sermon-archive-search-api/internal/repository"
	"github.com/sermon-archive-search-api/internal/scripture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo serves a fixed candidate set; err, when set, is returned from
// every call.
type fakeRepo struct {
	docs   []models.Document
	series []models.Series
	err    error
}

func (f *fakeRepo) FindCandidates(ctx context.Context, filters models.SearchFilters) ([]models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *fakeRepo) CountCandidates(ctx context.Context, filters models.SearchFilters) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.docs), nil
}

func (f *fakeRepo) FindSeries(ctx context.Context, filters models.SearchFilters) ([]models.Series, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func (f *fakeRepo) GetTranscript(ctx context.Context, sermonID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, d := range f.docs {
		if d.ID == sermonID {
			return d.TranscriptText, nil
		}
	}
	return "", repository.ErrNotFound
}

func (f *fakeRepo) ListDimensionValues(ctx context.Context, attribute string, scalar bool) ([]models.DimensionValue, error) {
	return []models.DimensionValue{}, f.err
}

func doc(id, title string, opts ...func(*models.Document)) models.Document {
	d := models.Document{
		ID:         id,
		Title:      title,
		PreachedAt: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func withTags(tags ...models.ScriptureTag) func(*models.Document) {
	return func(d *models.Document) { d.ScriptureTags = tags }
}

func withTranscript(text string) func(*models.Document) {
	return func(d *models.Document) { d.TranscriptText = text }
}

func withDate(y int) func(*models.Document) {
	return func(d *models.Document) { d.PreachedAt = time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{doc("a", "Grace")}})

	for _, q := range []string{"", "   ", "\t\n"} {
		resp, err := svc.Search(context.Background(), models.SearchRequest{Query: q})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.False(t, resp.HasMore)
	}
}

func TestSearchStoreUnavailable(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{err: repository.ErrUnavailable})

	_, err := svc.Search(context.Background(), models.SearchRequest{Query: "grace"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrUnavailable))
}

func TestScoringMonotonicInTitleMatches(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{
		doc("once", "Grace"),
		doc("twice", "Grace upon grace"),
	}})

	resp, err := svc.Search(context.Background(), models.SearchRequest{Query: "grace"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "twice", resp.Results[0].Document.ID)
	assert.Greater(t, resp.Results[0].RelevanceScore, resp.Results[1].RelevanceScore)
	assert.Equal(t, 2, resp.Results[0].MatchCounts.Title)
	assert.Equal(t, 1, resp.Results[1].MatchCounts.Title)
}

func TestFieldWeightOrdering(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{
		doc("title", "Walking in grace"),
		doc("desc", "On holiness", func(d *models.Document) { d.Description = "a study of grace" }),
		doc("trans", "On holiness", withTranscript("and then grace appeared")),
	}})

	resp, err := svc.Search(context.Background(), models.SearchRequest{Query: "grace"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "title", resp.Results[0].Document.ID)
	assert.Equal(t, "desc", resp.Results[1].Document.ID)
	assert.Equal(t, "trans", resp.Results[2].Document.ID)
}

func TestScriptureBoostTierOrdering(t *testing.T) {
	romans8 := models.ScriptureTag{Book: "Romans", Chapter: 8}
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{
		doc("exact-verse", "Sermon A", withTags(models.ScriptureTag{Book: "Romans", Chapter: 8, VerseStart: 1, VerseEnd: 4})),
		doc("primary-chapter", "Sermon B", withTags(romans8)),
		doc("primary-book", "Sermon C", withTags(models.ScriptureTag{Book: "Romans", Chapter: 12})),
		doc("secondary", "Sermon D", withTags(models.ScriptureTag{Book: "John", Chapter: 3}, romans8)),
		doc("unrelated", "Sermon E", withTags(models.ScriptureTag{Book: "Jude", Chapter: 1})),
	}})

	resp, err := svc.Search(context.Background(), models.SearchRequest{Query: "Romans 8:1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Scripture)
	assert.Equal(t, "Romans", resp.Scripture.Book)

	require.Len(t, resp.Results, 4)
	ids := []string{
		resp.Results[0].Document.ID,
		resp.Results[1].Document.ID,
		resp.Results[2].Document.ID,
		resp.Results[3].Document.ID,
	}
	assert.Equal(t, []string{"exact-verse", "primary-chapter", "primary-book", "secondary"}, ids)
}

func TestScriptureBoostCollapsedTiers(t *testing.T) {
	tests := []struct {
		name  string
		ref   *scripture.Reference
		tags  []models.ScriptureTag
		boost float64
	}{
		{
			"chapter ref primary chapter match",
			&scripture.Reference{Book: "Romans", Chapter: 8},
			[]models.ScriptureTag{{Book: "Romans", Chapter: 8}},
			boostPrimarySpecific,
		},
		{
			"chapter ref primary book match",
			&scripture.Reference{Book: "Romans", Chapter: 8},
			[]models.ScriptureTag{{Book: "Romans", Chapter: 3}},
			boostPrimaryBook,
		},
		{
			"chapter ref secondary chapter match",
			&scripture.Reference{Book: "Romans", Chapter: 8},
			[]models.ScriptureTag{{Book: "John", Chapter: 1}, {Book: "Romans", Chapter: 8}},
			boostSecondary,
		},
		{
			"book ref primary match",
			&scripture.Reference{Book: "Romans"},
			[]models.ScriptureTag{{Book: "Romans", Chapter: 8}},
			boostPrimarySpecific,
		},
		{
			"book ref secondary match",
			&scripture.Reference{Book: "Romans"},
			[]models.ScriptureTag{{Book: "John", Chapter: 1}, {Book: "Romans", Chapter: 8}},
			boostSecondary,
		},
		{
			"verse ref whole-chapter primary tag is a chapter hit",
			&scripture.Reference{Book: "John", Chapter: 3, Verse: 16},
			[]models.ScriptureTag{{Book: "John", Chapter: 3}},
			boostPrimarySpecific,
		},
		{
			"verse ref outside tag range",
			&scripture.Reference{Book: "John", Chapter: 3, Verse: 16},
			[]models.ScriptureTag{{Book: "John", Chapter: 3, VerseStart: 1, VerseEnd: 8}},
			boostPrimarySpecific,
		},
		{
			"no match",
			&scripture.Reference{Book: "Romans", Chapter: 8},
			[]models.ScriptureTag{{Book: "Jude", Chapter: 1}},
			0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := doc("x", "Sermon", withTags(tc.tags...))
			assert.Equal(t, tc.boost, scriptureBoost(tc.ref, &d))
		})
	}
}

func TestTagOnlyCandidacy(t *testing.T) {
	// No field of the document contains the literal query string; the tag
	// alone makes it a candidate.
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{
		doc("tagged", "No Condemnation", withTags(models.ScriptureTag{Book: "Romans", Chapter: 8, VerseStart: 1})),
		doc("untagged", "Another Sermon"),
	}})

	resp, err := svc.Search(context.Background(), models.SearchRequest{Query: "Romans 8:1"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "tagged", resp.Results[0].Document.ID)
	assert.Equal(t, boostExactVerse, resp.Results[0].RelevanceScore)
}

func TestPaginationNoOverlapNoGaps(t *testing.T) {
	docs := make([]models.Document, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		docs = append(docs, doc(id, "grace "+id))
	}
	svc := NewRelevanceService(&fakeRepo{docs: docs})

	seen := make(map[string]bool)
	var pages int
	for offset := 0; ; offset += 4 {
		resp, err := svc.Search(context.Background(), models.SearchRequest{
			Query: "grace", Limit: 4, Offset: offset,
		})
		require.NoError(t, err)
		for _, r := range resp.Results {
			assert.False(t, seen[r.Document.ID], "duplicate %q across pages", r.Document.ID)
			seen[r.Document.ID] = true
		}
		pages++
		if !resp.HasMore {
			break
		}
		assert.Len(t, resp.Results, 4)
	}
	assert.Len(t, seen, 10)
	assert.Equal(t, 3, pages)
}

func TestPaginationClampsBadValues(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{doc("a", "grace")}})

	resp, err := svc.Search(context.Background(), models.SearchRequest{
		Query: "grace", Limit: -5, Offset: -3,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.False(t, resp.HasMore)
}

func TestSortModes(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{
		doc("old", "grace", withDate(1995)),
		doc("new", "grace", withDate(2020)),
	}})

	resp, err := svc.Search(context.Background(), models.SearchRequest{Query: "grace", Sort: "newest"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Results[0].Document.ID)

	resp, err = svc.Search(context.Background(), models.SearchRequest{Query: "grace", Sort: "oldest"})
	require.NoError(t, err)
	assert.Equal(t, "old", resp.Results[0].Document.ID)

	// Unknown sort keys fall back to relevance; equal scores break newest-first.
	resp, err = svc.Search(context.Background(), models.SearchRequest{Query: "grace", Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Results[0].Document.ID)
}

func TestSeriesAggregation(t *testing.T) {
	member := func(id string, title string) models.Document { return doc(id, title) }

	pervasive := models.Series{ID: "s1", Name: "Studies in Holiness", Members: []models.Document{
		member("p1", "Grace defined"),
		member("p2", "Grace applied"),
	}}
	oneOff := models.Series{ID: "s2", Name: "Assorted Sermons", Members: []models.Document{
		member("o1", "Grace defined"),
		member("o2", "On prayer"),
		member("o3", "On fasting"),
		member("o4", "On giving"),
	}}
	svc := NewRelevanceService(&fakeRepo{series: []models.Series{oneOff, pervasive}})

	results, hasMore, err := svc.SearchSeries(context.Background(), models.SearchRequest{Query: "grace"})
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, results, 2)

	// Two of two members match vs one of four: the pervasive series wins even
	// though both carry the same strongest single-member score.
	assert.Equal(t, "s1", results[0].Series.ID)
	assert.Equal(t, 2, results[0].MatchedMembers)
	assert.Equal(t, 1, results[1].MatchedMembers)
}

func TestSeriesNameBonusWithoutMemberMatches(t *testing.T) {
	named := models.Series{ID: "s1", Name: "The Grace of God", Members: []models.Document{
		doc("m1", "On prayer"),
	}}
	svc := NewRelevanceService(&fakeRepo{series: []models.Series{named}})

	results, _, err := svc.SearchSeries(context.Background(), models.SearchRequest{Query: "grace"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, seriesNameBonus, results[0].RelevanceScore)
	assert.Equal(t, 0, results[0].MatchedMembers)
}

func TestSeriesDampingForLargeSeries(t *testing.T) {
	large := models.Series{ID: "large", Name: "Verse by Verse"}
	for i := 0; i < 40; i++ {
		large.Members = append(large.Members, doc("l", "grace"))
	}
	small := models.Series{ID: "small", Name: "Short Series"}
	for i := 0; i < 4; i++ {
		small.Members = append(small.Members, doc("s", "grace"))
	}
	svc := NewRelevanceService(&fakeRepo{series: []models.Series{large, small}})

	results, _, err := svc.SearchSeries(context.Background(), models.SearchRequest{Query: "grace"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// All members match in both, so without damping the large series would
	// score 10x the small one; damping narrows that.
	perMemberLarge := results[0].RelevanceScore / 40
	if results[0].Series.ID == "small" {
		perMemberLarge = results[1].RelevanceScore / 40
	}
	assert.Less(t, perMemberLarge, titleWeight)
}

func TestDeterministicRanking(t *testing.T) {
	svc := NewRelevanceService(&fakeRepo{docs: []models.Document{
		doc("a", "grace and truth", withDate(2001)),
		doc("b", "grace abounding", withDate(2002)),
		doc("c", "means of grace", withDate(2003)),
	}})

	req := models.SearchRequest{Query: "grace"}
	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Search(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.Results, again.Results)
	}
}
