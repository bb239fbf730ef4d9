package services

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sermon-archive-search-api/internal/models"
	"github.com/sermon-archive-search-api/internal/repository"
)

// Snippet extraction constants.
const (
	defaultMaxSnippets   = 3
	defaultSnippetLength = 200
	maxCandidateMatches  = 20
	minTokenLength       = 2

	// snippetSpacingRatio keeps selected match positions at least this many
	// snippet-lengths apart, avoiding near-duplicate overlapping excerpts.
	snippetSpacingRatio = 1.5

	markOpen  = "<mark>"
	markClose = "</mark>"
	ellipsis  = "..."
)

// SnippetService extracts highlighted transcript excerpts for one sermon.
type SnippetService struct {
	repo repository.DocumentRepository
}

// NewSnippetService creates a new snippet service
func NewSnippetService(repo repository.DocumentRepository) *SnippetService {
	return &SnippetService{repo: repo}
}

// SermonSnippets fetches a sermon's transcript and extracts snippets for the
// query.
func (s *SnippetService) SermonSnippets(ctx context.Context, req models.SnippetRequest) (*models.SnippetResponse, error) {
	transcript, err := s.repo.GetTranscript(ctx, req.SermonID)
	if err != nil {
		return nil, err
	}
	return &models.SnippetResponse{
		SermonID: req.SermonID,
		Query:    req.Query,
		Snippets: ExtractSnippets(transcript, req.Query, req.MaxSnippets, req.SnippetLength),
	}, nil
}

// ExtractSnippets selects up to maxSnippets spaced, word-boundary-aligned
// excerpts of text around query matches, with matched terms wrapped in <mark>
// spans. Identical input always yields identical output.
func ExtractSnippets(text, query string, maxSnippets, snippetLength int) []models.Snippet {
	if maxSnippets <= 0 {
		maxSnippets = defaultMaxSnippets
	}
	if snippetLength <= 0 {
		snippetLength = defaultSnippetLength
	}

	tokens := usableTokens(query)
	if text == "" || len(tokens) == 0 {
		return []models.Snippet{}
	}

	lowerText := foldASCII(text)
	positions := matchPositions(lowerText, foldASCII(strings.TrimSpace(query)), tokens)
	if len(positions) == 0 {
		return []models.Snippet{}
	}

	selected := spacedPositions(positions, maxSnippets, snippetLength)

	snippets := make([]models.Snippet, 0, len(selected))
	for _, pos := range selected {
		start, end := snippetWindow(text, pos, snippetLength)
		excerpt := highlightTokens(text[start:end], tokens)
		if start > 0 {
			excerpt = ellipsis + excerpt
		}
		if end < len(text) {
			excerpt = excerpt + ellipsis
		}
		snippets = append(snippets, models.Snippet{Text: excerpt, Position: start})
	}
	return snippets
}

// usableTokens splits the query on whitespace and drops tokens too short to
// match meaningfully.
func usableTokens(query string) []string {
	fields := strings.Fields(foldASCII(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// matchPositions finds candidate match offsets in lowerText. Whole-query
// matches take priority; individual tokens are tried only when the full query
// never occurs. The candidate list is capped to bound cost.
func matchPositions(lowerText, lowerQuery string, tokens []string) []int {
	positions := indexAll(lowerText, lowerQuery, maxCandidateMatches)
	if len(positions) > 0 {
		return positions
	}

	for _, token := range tokens {
		positions = append(positions, indexAll(lowerText, token, maxCandidateMatches-len(positions))...)
		if len(positions) >= maxCandidateMatches {
			break
		}
	}
	sort.Ints(positions)
	return positions
}

// indexAll returns up to max non-overlapping occurrence offsets of needle.
func indexAll(haystack, needle string, max int) []int {
	if needle == "" || max <= 0 {
		return nil
	}
	var out []int
	offset := 0
	for len(out) < max {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			break
		}
		out = append(out, offset+i)
		offset += i + len(needle)
	}
	return out
}

// spacedPositions greedily keeps ascending positions at least
// snippetSpacingRatio × snippetLength apart, up to max.
func spacedPositions(positions []int, max, snippetLength int) []int {
	minGap := int(snippetSpacingRatio * float64(snippetLength))
	selected := make([]int, 0, max)
	for _, p := range positions {
		if len(selected) == max {
			break
		}
		if len(selected) > 0 && p-selected[len(selected)-1] < minGap {
			continue
		}
		selected = append(selected, p)
	}
	return selected
}

// snippetWindow centers a window of snippetLength characters on pos, then
// aligns both ends to whitespace so words are never truncated mid-token.
func snippetWindow(text string, pos, snippetLength int) (int, int) {
	start := pos - snippetLength/2
	if start < 0 {
		start = 0
	}
	end := start + snippetLength
	if end > len(text) {
		end = len(text)
	}

	if start > 0 && !isSpace(text[start-1]) {
		// Inside a word: drop the partial word at the front.
		for start < pos && !isSpace(text[start]) {
			start++
		}
		for start < pos && isSpace(text[start]) {
			start++
		}
	}
	if end < len(text) && !isSpace(text[end]) {
		// Inside a word: extend to finish it.
		for end < len(text) && !isSpace(text[end]) {
			end++
		}
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// foldASCII lower-cases ASCII letters without changing byte length, so match
// offsets in the folded text are valid offsets in the original.
func foldASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

// highlightTokens wraps every occurrence of every token in mark spans,
// longest token first so a short token never fragments a longer overlapping
// match.
func highlightTokens(window string, tokens []string) string {
	ordered := make([]string, len(tokens))
	copy(ordered, tokens)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	lower := foldASCII(window)
	claimed := make([]bool, len(window))
	type span struct{ start, end int }
	var spans []span

	for _, token := range ordered {
		offset := 0
		for {
			i := strings.Index(lower[offset:], token)
			if i < 0 {
				break
			}
			start := offset + i
			end := start + len(token)
			if !anyClaimed(claimed, start, end) {
				for k := start; k < end; k++ {
					claimed[k] = true
				}
				spans = append(spans, span{start, end})
			}
			offset = end
		}
	}

	if len(spans) == 0 {
		return window
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(window[prev:sp.start])
		b.WriteString(markOpen)
		b.WriteString(window[sp.start:sp.end])
		b.WriteString(markClose)
		prev = sp.end
	}
	b.WriteString(window[prev:])
	return b.String()
}

func anyClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}
