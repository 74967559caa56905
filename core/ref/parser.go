package ref

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/bibleref/core/books"
	"github.com/FocuswithJustin/bibleref/core/errors"
)

const (
	// NoChapter means no chapter context has been established.
	NoChapter = 0

	// NoChapterLimit accepts any chapter number.
	NoChapterLimit = math.MaxInt
)

// romanNumerals are accepted in place of a leading book number ("II John").
var romanNumerals = [...]string{"I", "II", "III", "IV", "V"}

// Catalog resolves book names. *books.Catalog implements it.
type Catalog interface {
	// Lookup resolves a book name, code or abbreviation.
	Lookup(text string, culture language.Tag) (books.ID, bool)
	// Name returns the display name of a book.
	Name(id books.ID, culture language.Tag) string
	// MaxChapter returns the chapter count of a book, or 0 if unknown.
	MaxChapter(id books.ID) int
	// Ordinal returns the spelled-out ordinal for n ("First"), or "".
	Ordinal(n int, culture language.Tag) string
}

// Parser parses and formats references against a Catalog.
type Parser struct {
	catalog Catalog
}

// NewParser returns a parser resolving books through catalog.
func NewParser(catalog Catalog) *Parser {
	return &Parser{catalog: catalog}
}

var defaultParser = sync.OnceValue(func() *Parser {
	return NewParser(books.Default())
})

// Parse parses text such as "1 John 3:16-18" using the default catalog.
func Parse(text string, culture language.Tag) (Reference, error) {
	return defaultParser().Parse(text, culture)
}

// TryParse is Parse reporting only success.
func TryParse(text string, culture language.Tag) (Reference, bool) {
	r, err := Parse(text, culture)
	return r, err == nil
}

// Parse parses a full citation: a book name optionally followed by a
// segment list.
func (p *Parser) Parse(text string, culture language.Tag) (Reference, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reference{}, errors.NewEmptyInput()
	}

	bookPart, segPart := splitBook(text)
	id, ok := p.lookupBook(bookPart, culture)
	if !ok {
		return Reference{}, errors.NewUnknownBook(strings.TrimSpace(bookPart))
	}
	maxChapter := p.catalog.MaxChapter(id)
	if maxChapter < 1 {
		return Reference{}, errors.NewUnknownBook(strings.TrimSpace(bookPart))
	}

	segs, err := ParseSegments(segPart, maxChapter)
	if err != nil {
		return Reference{}, err
	}
	return Reference{book: id, segments: segs}, nil
}

// TryParse is Parse reporting only success.
func (p *Parser) TryParse(text string, culture language.Tag) (Reference, bool) {
	r, err := p.Parse(text, culture)
	return r, err == nil
}

// Format renders r as "{book name} {segments}" in culture.
func (p *Parser) Format(r Reference, culture language.Tag) string {
	var b strings.Builder
	b.WriteString(p.catalog.Name(r.book, culture))
	formatSegments(&b, r.segments)
	return b.String()
}

// splitBook splits text before its first digit past the first character.
func splitBook(text string) (book, segments string) {
	for i, r := range text {
		if i > 0 && unicode.IsDigit(r) {
			return text[:i], text[i:]
		}
	}
	return text, ""
}

// lookupBook resolves the book part, reading a leading ordinal or Roman
// numeral token as its digit.
func (p *Parser) lookupBook(text string, culture language.Tag) (books.ID, bool) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return "", false
	}
	if n := p.leadingNumber(tokens[0], culture); n > 0 {
		tokens[0] = strconv.Itoa(n)
	}
	return p.catalog.Lookup(strings.Join(tokens, " "), culture)
}

// ordinalCatalog is implemented by catalogs that accept several spellings
// per ordinal.
type ordinalCatalog interface {
	OrdinalNumber(token string, culture language.Tag) int
}

func (p *Parser) leadingNumber(token string, culture language.Tag) int {
	if oc, ok := p.catalog.(ordinalCatalog); ok {
		if n := oc.OrdinalNumber(token, culture); n > 0 {
			return n
		}
	}
	folded := cases.Fold().String(token)
	for i, roman := range romanNumerals {
		n := i + 1
		if folded == cases.Fold().String(roman) {
			return n
		}
		if ord := p.catalog.Ordinal(n, culture); ord != "" && folded == cases.Fold().String(ord) {
			return n
		}
	}
	return 0
}

// ParseSegments parses a segment list such as "1:1-5,8;2:1-3" for a book
// with maxChapter chapters. Blank text yields no segments.
//
// In a single-chapter book a list without ':' other than "1" is read as
// verses of chapter 1, so "1-3" means 1:1-3.
func ParseSegments(text string, maxChapter int) ([]Segment, error) {
	if maxChapter < 1 {
		return nil, errors.NewInvalidArgument("max chapter must be greater than 0, got " + strconv.Itoa(maxChapter))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if maxChapter == 1 && !strings.Contains(text, ":") {
		if n, ok := parseNumber(text); ok && n == 1 {
			return []Segment{SingleChapter(1)}, nil
		}
		text = "1:" + text
	}

	var segs []Segment
	for _, citation := range splitNonEmpty(text, ";") {
		context := NoChapter
		for _, segText := range splitNonEmpty(citation, ",") {
			var (
				seg Segment
				err error
			)
			seg, context, err = parseSegment(segText, maxChapter, context)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		}
	}
	return segs, nil
}

// TryParseSegments is ParseSegments reporting only success.
func TryParseSegments(text string, maxChapter int) ([]Segment, bool) {
	segs, err := ParseSegments(text, maxChapter)
	return segs, err == nil
}

// splitNonEmpty splits s on sep, trimming parts and dropping empty ones.
func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSegment parses "point" or "point-point". Range endpoints are not
// dropped when empty, so "1:1-" fails on its missing end.
func parseSegment(text string, maxChapter, context int) (Segment, int, error) {
	parts := strings.Split(text, "-")
	switch len(parts) {
	case 1:
		p, ctx, err := parsePoint(parts[0], maxChapter, context)
		if err != nil {
			return Segment{}, context, err
		}
		return pointSegment(p), ctx, nil
	case 2:
		start, ctx, err := parsePoint(parts[0], maxChapter, context)
		if err != nil {
			return Segment{}, context, err
		}
		end, ctx, err := parsePoint(parts[1], maxChapter, ctx)
		if err != nil {
			return Segment{}, context, err
		}
		seg, err := NewSegment(start, end)
		if err != nil {
			return Segment{}, context, err
		}
		return seg, ctx, nil
	default:
		return Segment{}, context, errors.NewInvalidFormat(text, "invalid range format")
	}
}

// ParsePoint parses "chapter:verse" or a bare number. A bare number is a
// verse of chapterOverride when one is given (not NoChapter), a verse of
// chapter 1 in a single-chapter book (except "1", the whole chapter), and
// a whole chapter otherwise.
func ParsePoint(text string, maxChapter, chapterOverride int) (Point, error) {
	if maxChapter < 1 {
		return Point{}, errors.NewInvalidArgument("max chapter must be greater than 0, got " + strconv.Itoa(maxChapter))
	}
	if chapterOverride < 0 {
		return Point{}, errors.NewInvalidArgument("chapter override cannot be negative, got " + strconv.Itoa(chapterOverride))
	}
	if chapterOverride > maxChapter {
		return Point{}, errors.NewChapterOutOfRange(strconv.Itoa(chapterOverride), "chapter exceeds max chapter")
	}
	p, _, err := parsePoint(text, maxChapter, chapterOverride)
	return p, err
}

// TryParsePoint is ParsePoint reporting only success.
func TryParsePoint(text string, maxChapter, chapterOverride int) (Point, bool) {
	p, err := ParsePoint(text, maxChapter, chapterOverride)
	return p, err == nil
}

// parsePoint returns the point and the chapter context for the next point
// of the citation. Only chapter:verse points set the context.
func parsePoint(text string, maxChapter, context int) (Point, int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Point{}, context, errors.NewInvalidFormat(text, "missing number")
	}

	if chapterText, verseText, ok := strings.Cut(text, ":"); ok {
		chapterText = strings.TrimSpace(chapterText)
		verseText = strings.TrimSpace(verseText)
		if strings.Contains(verseText, ":") {
			return Point{}, context, errors.NewInvalidFormat(text, "too many ':' separators")
		}
		if chapterText == "" {
			return Point{}, context, errors.NewInvalidFormat(text, "missing chapter")
		}
		chapter, ok := parseNumber(chapterText)
		if !ok {
			return Point{}, context, errors.NewInvalidFormat(text, "chapter is not a number")
		}
		if err := checkChapter(text, chapter, maxChapter); err != nil {
			return Point{}, context, err
		}
		if verseText == "" {
			return Point{}, context, errors.NewInvalidFormat(text, "missing verse")
		}
		verse, ok := parseNumber(verseText)
		if !ok || verse < 1 {
			return Point{}, context, errors.NewInvalidVerse(text, "verse must be a number greater than 0")
		}
		return Point{chapter: chapter, verse: verse}, chapter, nil
	}

	n, ok := parseNumber(text)
	if !ok {
		return Point{}, context, errors.NewInvalidFormat(text, "not a number")
	}

	switch {
	case maxChapter == 1:
		if n == 1 {
			return Point{chapter: 1}, context, nil
		}
		if n < 1 {
			return Point{}, context, errors.NewInvalidVerse(text, "verse must be greater than 0")
		}
		return Point{chapter: 1, verse: n}, context, nil
	case context != NoChapter:
		if n < 1 {
			return Point{}, context, errors.NewInvalidVerse(text, "verse must be greater than 0")
		}
		return Point{chapter: context, verse: n}, context, nil
	default:
		if err := checkChapter(text, n, maxChapter); err != nil {
			return Point{}, context, err
		}
		return Point{chapter: n}, context, nil
	}
}

func checkChapter(text string, chapter, maxChapter int) error {
	if chapter <= 0 {
		return errors.NewChapterOutOfRange(text, "chapter must be greater than 0")
	}
	if chapter > maxChapter {
		return errors.NewChapterOutOfRange(text, "chapter exceeds max chapter")
	}
	return nil
}

// parseNumber accepts ASCII digits only, so signs and spaces are rejected.
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
