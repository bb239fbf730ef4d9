package scripture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonHas66Books(t *testing.T) {
	assert.Len(t, CanonicalBooks, 66)

	seen := make(map[string]bool)
	for _, name := range CanonicalBooks {
		assert.False(t, seen[name], "duplicate canon entry %q", name)
		seen[name] = true
	}
}

func TestNormalizeBookAbbreviations(t *testing.T) {
	cases := map[string]string{
		"rom":     "Romans",
		"Rom":     "Romans",
		"rom.":    "Romans",
		"1cor":    "1 Corinthians",
		"1 Cor":   "1 Corinthians",
		"ps":      "Psalms",
		"psalm":   "Psalms",
		"song":    "Song of Solomon",
		"1  jn":   "1 John",
		"rev":     "Revelation",
		"gen":     "Genesis",
		"2 Tim.":  "2 Timothy",
		"matt":    "Matthew",
		"1 kings": "1 Kings",
	}
	for input, want := range cases {
		got, ok := NormalizeBook(input)
		require.True(t, ok, "expected %q to normalize", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestNormalizeBookFullNames(t *testing.T) {
	for _, name := range CanonicalBooks {
		got, ok := NormalizeBook(name)
		require.True(t, ok, "canonical name %q should normalize", name)
		assert.Equal(t, name, got)

		got, ok = NormalizeBook(strings.ToUpper(name))
		require.True(t, ok, "upper-cased %q should normalize", name)
		assert.Equal(t, name, got)
	}
}

func TestEveryBookHasAnAbbreviation(t *testing.T) {
	covered := make(map[string]bool)
	for _, canonical := range bookAbbreviations {
		covered[canonical] = true
	}
	for _, name := range CanonicalBooks {
		assert.True(t, covered[name], "book %q has no short form", name)
	}
}

func TestAbbreviationsResolveToCanonicalNames(t *testing.T) {
	canon := make(map[string]bool, len(CanonicalBooks))
	for _, name := range CanonicalBooks {
		canon[name] = true
	}
	for abbr, canonical := range bookAbbreviations {
		assert.True(t, canon[canonical], "abbreviation %q maps to unknown book %q", abbr, canonical)
	}
}

func TestNormalizeBookNotFound(t *testing.T) {
	for _, input := range []string{"not a book", "", "   ", "romansss", "4 john", "xyz"} {
		_, ok := NormalizeBook(input)
		assert.False(t, ok, "input %q should not normalize", input)
	}
}
