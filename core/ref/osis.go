package ref

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/bibleref/core/books"
	"github.com/FocuswithJustin/bibleref/core/errors"
)

// osisGrammar is a space-separated list of OSIS references.
// Examples: "Gen", "Gen.1", "Gen.1.1", "Gen.1.1-Gen.1.5", "Gen.1.1-5",
// "1John.3.16 1John.4.1-3".
//
//nolint:govet // participle grammar tags are not standard struct tags
type osisGrammar struct {
	Ranges []*osisRange `@@+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type osisRange struct {
	Start *osisID  `@@`
	End   *osisEnd `( "-" @@ )?`
}

// osisEnd is either a full OSIS ID or a bare number continuing the start
// (a verse if the start names one, otherwise a chapter).
//
//nolint:govet // participle grammar tags are not standard struct tags
type osisEnd struct {
	Number *int    `  @Int`
	ID     *osisID `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type osisID struct {
	Book    string       `@Book`
	Chapter *osisChapter `( "." @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type osisChapter struct {
	Number int  `@Int`
	Verse  *int `( "." @Int )?`
}

// Book precedes Int so that "1John" lexes as one token.
var osisLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `[1-9]?[A-Z][A-Za-z]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var osisParser = participle.MustBuild[osisGrammar](
	participle.Lexer(osisLexer),
	participle.Elide("Whitespace"),
)

// ParseOSIS parses OSIS reference syntax using the default catalog.
func ParseOSIS(text string) (Reference, error) {
	return defaultParser().ParseOSIS(text)
}

// ParseOSIS parses OSIS reference syntax: one or more space-separated
// references to the same book, e.g. "Gen.1.1-Gen.1.5 Gen.2".
// A bare book ("Gen") designates the whole book.
func (p *Parser) ParseOSIS(text string) (Reference, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reference{}, errors.NewEmptyInput()
	}

	parsed, err := osisParser.ParseString("", text)
	if err != nil {
		return Reference{}, errors.NewInvalidFormat(text, err.Error())
	}

	book := parsed.Ranges[0].Start.book()
	maxChapter := p.catalog.MaxChapter(book)
	if maxChapter < 1 {
		return Reference{}, errors.NewUnknownBook(string(book))
	}

	if parsed.Ranges[0].Start.Chapter == nil {
		if len(parsed.Ranges) > 1 || parsed.Ranges[0].End != nil {
			return Reference{}, errors.NewInvalidFormat(text, "whole-book reference cannot be combined")
		}
		return Reference{book: book}, nil
	}

	segs := make([]Segment, 0, len(parsed.Ranges))
	for _, r := range parsed.Ranges {
		seg, err := r.segment(book, maxChapter)
		if err != nil {
			return Reference{}, err
		}
		segs = append(segs, seg)
	}
	return Reference{book: book, segments: segs}, nil
}

func (id *osisID) book() books.ID {
	return books.ID(id.Book)
}

func (id *osisID) String() string {
	s := string(id.book())
	if id.Chapter != nil {
		s += "." + strconv.Itoa(id.Chapter.Number)
		if id.Chapter.Verse != nil {
			s += "." + strconv.Itoa(*id.Chapter.Verse)
		}
	}
	return s
}

func (r *osisRange) segment(book books.ID, maxChapter int) (Segment, error) {
	start, err := r.Start.point(book, maxChapter)
	if err != nil {
		return Segment{}, err
	}
	if r.End == nil {
		return pointSegment(start), nil
	}

	var end Point
	switch {
	case r.End.ID != nil:
		if end, err = r.End.ID.point(book, maxChapter); err != nil {
			return Segment{}, err
		}
	case start.IsWholeChapter():
		n := *r.End.Number
		if err := checkChapter(strconv.Itoa(n), n, maxChapter); err != nil {
			return Segment{}, err
		}
		end = Point{chapter: n}
	default:
		n := *r.End.Number
		if n < 1 {
			return Segment{}, errors.NewInvalidVerse(strconv.Itoa(n), "verse must be greater than 0")
		}
		end = Point{chapter: start.chapter, verse: n}
	}
	return NewSegment(start, end)
}

func (id *osisID) point(book books.ID, maxChapter int) (Point, error) {
	if id.book() != book {
		return Point{}, errors.NewInvalidFormat(id.String(), "references span more than one book")
	}
	if id.Chapter == nil {
		return Point{}, errors.NewInvalidFormat(id.String(), "missing chapter")
	}
	if err := checkChapter(id.String(), id.Chapter.Number, maxChapter); err != nil {
		return Point{}, err
	}
	if id.Chapter.Verse == nil {
		return Point{chapter: id.Chapter.Number}, nil
	}
	if *id.Chapter.Verse < 1 {
		return Point{}, errors.NewInvalidVerse(id.String(), "verse must be greater than 0")
	}
	return Point{chapter: id.Chapter.Number, verse: *id.Chapter.Verse}, nil
}

// osisPoint renders p of book as an OSIS ID ("Gen.1" or "Gen.1.1").
func osisPoint(book books.ID, p Point) string {
	s := string(book) + "." + strconv.Itoa(p.chapter)
	if p.verse != 0 {
		s += "." + strconv.Itoa(p.verse)
	}
	return s
}
