package ref

import (
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/FocuswithJustin/bibleref/core/books"
)

// Reference is a book together with an ordered list of segments. Segment
// order is preserved as given; it drives citation grouping when formatting.
// A Reference with no segments designates the whole book.
type Reference struct {
	book     books.ID
	segments []Segment
}

// NewReference returns a reference to segs of book. The segments are
// copied and kept in the given order.
func NewReference(book books.ID, segs ...Segment) Reference {
	return Reference{book: book, segments: slices.Clone(segs)}
}

// Book returns the book identifier.
func (r Reference) Book() books.ID { return r.book }

// Segments returns a copy of the segments in order.
func (r Reference) Segments() []Segment { return slices.Clone(r.segments) }

// Equal reports whether r and other name the same book and the same
// segments in the same order.
func (r Reference) Equal(other Reference) bool {
	return r.book == other.book && slices.Equal(r.segments, other.segments)
}

// Simplify returns a reference to the same book with simplified segments.
func (r Reference) Simplify() Reference {
	return Reference{book: r.book, segments: Simplify(r.segments)}
}

// Format renders r using the default catalog's book names for culture.
func (r Reference) Format(culture language.Tag) string {
	return defaultParser().Format(r, culture)
}

// String renders r in the default culture.
func (r Reference) String() string {
	return r.Format(language.Und)
}

// OSIS renders r as a space-separated list of OSIS references, e.g.
// "Gen.1.1-Gen.1.5 Gen.2".
func (r Reference) OSIS() string {
	if len(r.segments) == 0 {
		return string(r.book)
	}
	parts := make([]string, len(r.segments))
	for i, s := range r.segments {
		parts[i] = osisPoint(r.book, s.start)
		if s.start != s.end {
			parts[i] += "-" + osisPoint(r.book, s.end)
		}
	}
	return strings.Join(parts, " ")
}

// formatSegments renders segments after the book name. A segment lying in
// the same chapter as its predecessor, both being verse ranges, continues
// the citation after a comma; anything else starts a new citation.
func formatSegments(b *strings.Builder, segs []Segment) {
	for i, s := range segs {
		if i == 0 {
			b.WriteByte(' ')
			b.WriteString(s.String())
			continue
		}
		prev := segs[i-1]
		if prev.withinChapter() && s.withinChapter() && prev.start.chapter == s.start.chapter {
			b.WriteByte(',')
			b.WriteString(s.verses())
			continue
		}
		b.WriteByte(';')
		b.WriteString(s.String())
	}
}
