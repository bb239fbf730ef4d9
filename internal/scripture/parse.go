package scripture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reference is a parsed scripture reference. Chapter and Verse are zero when
// absent; a Reference never carries a verse without a chapter, or a chapter
// without a book.
type Reference struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`
}

// String renders the reference in the usual citation form, e.g. "Romans 8:1".
func (r Reference) String() string {
	switch {
	case r.Verse > 0:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	case r.Chapter > 0:
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	default:
		return r.Book
	}
}

// bookLocatorPattern splits a query into a leading book-like segment (letters
// with an optional leading 1/2/3) and a trailing locator segment that begins
// with "chapter" or a digit.
var bookLocatorPattern = regexp.MustCompile(`(?i)^\s*([1-3]?\s*[a-z][a-z.\s]*?)\s+(chapter\s+\d.*|\d.*)$`)

// locatorPatterns are tried in order; the first match wins. A trailing verse
// range ("-K") is accepted on the N:M form but the range end is discarded.
var (
	locatorChapterVerseWords = regexp.MustCompile(`(?i)^chapter\s+(\d+)\s+verse\s+(\d+)\s*$`)
	locatorChapterColon      = regexp.MustCompile(`(?i)^chapter\s+(\d+)\s*:\s*(\d+)\s*$`)
	locatorChapterWord       = regexp.MustCompile(`(?i)^chapter\s+(\d+)\s*$`)
	locatorColon             = regexp.MustCompile(`^(\d+)\s*:\s*(\d+)(?:\s*-\s*\d+)?\s*$`)
	locatorBare              = regexp.MustCompile(`^(\d+)\s*$`)
)

// Parse extracts a scripture reference from a free-text query. It returns
// ok=false when the query does not look like a reference; that is the normal
// "treat as keyword search" branch, never an error.
func Parse(query string) (*Reference, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, false
	}

	m := bookLocatorPattern.FindStringSubmatch(trimmed)
	if m == nil {
		// No locator segment: the whole query may still name a book.
		if book, ok := NormalizeBook(trimmed); ok {
			return &Reference{Book: book}, true
		}
		return nil, false
	}

	book, ok := NormalizeBook(m[1])
	if !ok {
		return nil, false
	}

	chapter, verse, ok := parseLocator(m[2])
	if !ok {
		return nil, false
	}
	return &Reference{Book: book, Chapter: chapter, Verse: verse}, true
}

func parseLocator(locator string) (chapter, verse int, ok bool) {
	locator = strings.TrimSpace(locator)
	for _, form := range []struct {
		re       *regexp.Regexp
		hasVerse bool
	}{
		{locatorChapterVerseWords, true},
		{locatorChapterColon, true},
		{locatorChapterWord, false},
		{locatorColon, true},
		{locatorBare, false},
	} {
		m := form.re.FindStringSubmatch(locator)
		if m == nil {
			continue
		}
		chapter = mustPositiveInt(m[1])
		if chapter == 0 {
			return 0, 0, false
		}
		if form.hasVerse {
			verse = mustPositiveInt(m[2])
			if verse == 0 {
				return 0, 0, false
			}
		}
		return chapter, verse, true
	}
	return 0, 0, false
}

// mustPositiveInt returns 0 for anything that is not a positive integer.
func mustPositiveInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
