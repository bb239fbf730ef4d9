// Package scripture recognizes biblical references in free-text search queries.
package scripture

import "strings"

// CanonicalBooks lists the 66 canonical book names in canon order.
var CanonicalBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

// bookAbbreviations maps common short forms (lower-cased, space-collapsed) to
// canonical book names. Every book has at least one short form; several have
// more because user-typed queries are inconsistent about periods and spaces.
var bookAbbreviations = map[string]string{
	"gen": "Genesis", "ge": "Genesis", "gn": "Genesis",
	"ex": "Exodus", "exo": "Exodus", "exod": "Exodus",
	"lev": "Leviticus", "lv": "Leviticus",
	"num": "Numbers", "nm": "Numbers", "nu": "Numbers",
	"deut": "Deuteronomy", "dt": "Deuteronomy", "deu": "Deuteronomy",
	"josh": "Joshua", "jos": "Joshua",
	"judg": "Judges", "jdg": "Judges",
	"ru": "Ruth", "rth": "Ruth",
	"1 sam": "1 Samuel", "1sam": "1 Samuel", "1 sa": "1 Samuel", "1sa": "1 Samuel",
	"2 sam": "2 Samuel", "2sam": "2 Samuel", "2 sa": "2 Samuel", "2sa": "2 Samuel",
	"1 kgs": "1 Kings", "1kgs": "1 Kings", "1 ki": "1 Kings", "1ki": "1 Kings", "1 kings": "1 Kings",
	"2 kgs": "2 Kings", "2kgs": "2 Kings", "2 ki": "2 Kings", "2ki": "2 Kings", "2 kings": "2 Kings",
	"1 chr": "1 Chronicles", "1chr": "1 Chronicles", "1 chron": "1 Chronicles", "1chron": "1 Chronicles",
	"2 chr": "2 Chronicles", "2chr": "2 Chronicles", "2 chron": "2 Chronicles", "2chron": "2 Chronicles",
	"ezr": "Ezra",
	"neh": "Nehemiah", "ne": "Nehemiah",
	"est": "Esther", "esth": "Esther",
	"jb": "Job",
	"ps": "Psalms", "psa": "Psalms", "psalm": "Psalms", "pss": "Psalms",
	"prov": "Proverbs", "pr": "Proverbs", "pro": "Proverbs",
	"eccl": "Ecclesiastes", "ecc": "Ecclesiastes", "ec": "Ecclesiastes",
	"song": "Song of Solomon", "sos": "Song of Solomon", "song of songs": "Song of Solomon",
	"isa": "Isaiah", "is": "Isaiah",
	"jer": "Jeremiah", "je": "Jeremiah",
	"lam": "Lamentations", "la": "Lamentations",
	"ezek": "Ezekiel", "eze": "Ezekiel", "ezk": "Ezekiel",
	"dan": "Daniel", "da": "Daniel", "dn": "Daniel",
	"hos": "Hosea", "ho": "Hosea",
	"jl": "Joel", "joe": "Joel",
	"am": "Amos", "amo": "Amos",
	"obad": "Obadiah", "ob": "Obadiah",
	"jon": "Jonah", "jnh": "Jonah",
	"mic": "Micah", "mc": "Micah",
	"nah": "Nahum", "na": "Nahum",
	"hab": "Habakkuk", "hb": "Habakkuk",
	"zeph": "Zephaniah", "zep": "Zephaniah",
	"hag": "Haggai", "hg": "Haggai",
	"zech": "Zechariah", "zec": "Zechariah",
	"mal": "Malachi", "ml": "Malachi",
	"matt": "Matthew", "mt": "Matthew", "mat": "Matthew",
	"mk": "Mark", "mrk": "Mark", "mr": "Mark",
	"lk": "Luke", "luk": "Luke",
	"jn": "John", "jhn": "John", "joh": "John",
	"ac": "Acts", "act": "Acts",
	"rom": "Romans", "ro": "Romans", "rm": "Romans",
	"1 cor": "1 Corinthians", "1cor": "1 Corinthians", "1 co": "1 Corinthians", "1co": "1 Corinthians",
	"2 cor": "2 Corinthians", "2cor": "2 Corinthians", "2 co": "2 Corinthians", "2co": "2 Corinthians",
	"gal": "Galatians", "ga": "Galatians",
	"eph": "Ephesians", "ep": "Ephesians",
	"phil": "Philippians", "php": "Philippians", "philip": "Philippians",
	"col": "Colossians",
	"1 thess": "1 Thessalonians", "1thess": "1 Thessalonians", "1 th": "1 Thessalonians", "1th": "1 Thessalonians", "1 thes": "1 Thessalonians",
	"2 thess": "2 Thessalonians", "2thess": "2 Thessalonians", "2 th": "2 Thessalonians", "2th": "2 Thessalonians", "2 thes": "2 Thessalonians",
	"1 tim": "1 Timothy", "1tim": "1 Timothy", "1 ti": "1 Timothy", "1ti": "1 Timothy",
	"2 tim": "2 Timothy", "2tim": "2 Timothy", "2 ti": "2 Timothy", "2ti": "2 Timothy",
	"tit": "Titus", "ti": "Titus",
	"phlm": "Philemon", "phm": "Philemon", "philem": "Philemon",
	"heb": "Hebrews",
	"jas": "James", "jam": "James", "jm": "James",
	"1 pet": "1 Peter", "1pet": "1 Peter", "1 pe": "1 Peter", "1pe": "1 Peter", "1pt": "1 Peter",
	"2 pet": "2 Peter", "2pet": "2 Peter", "2 pe": "2 Peter", "2pe": "2 Peter", "2pt": "2 Peter",
	"1 jn": "1 John", "1jn": "1 John", "1 jo": "1 John", "1jo": "1 John", "1 john": "1 John",
	"2 jn": "2 John", "2jn": "2 John", "2 jo": "2 John", "2jo": "2 John", "2 john": "2 John",
	"3 jn": "3 John", "3jn": "3 John", "3 jo": "3 John", "3jo": "3 John", "3 john": "3 John",
	"jud": "Jude", "jde": "Jude",
	"rev": "Revelation", "re": "Revelation", "rv": "Revelation",
}

// canonicalByLower indexes the canon by lower-cased full name.
var canonicalByLower = func() map[string]string {
	m := make(map[string]string, len(CanonicalBooks))
	for _, name := range CanonicalBooks {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// NormalizeBook maps a user-typed book name or abbreviation to its canonical
// name. The lookup tries the abbreviation table first, then the full canonical
// names, both case-insensitively. There is no fuzzy matching: an input that is
// not a known form returns ok=false.
func NormalizeBook(input string) (string, bool) {
	key := normalizeKey(input)
	if key == "" {
		return "", false
	}
	if name, ok := bookAbbreviations[key]; ok {
		return name, true
	}
	if name, ok := canonicalByLower[key]; ok {
		return name, true
	}
	return "", false
}

// normalizeKey lower-cases, strips trailing periods, and collapses interior
// whitespace so "1  Cor." and "1 cor" hit the same table entry.
func normalizeKey(input string) string {
	key := strings.ToLower(strings.TrimSpace(input))
	key = strings.TrimSuffix(key, ".")
	return strings.Join(strings.Fields(key), " ")
}
