// Package ref parses, normalizes and formats scripture citations such as
// "Genesis 1:1-5;2:1-3".
//
// # Core Types
//
// A citation is modelled in three layers:
//
//   - Point: a chapter, optionally narrowed to a verse (verse 0 means the
//     whole chapter)
//   - Segment: a closed range between two Points, either chapter-to-chapter
//     or verse-to-verse
//   - Reference: a book plus an ordered list of Segments
//
// # Interval Algebra
//
// Segments support intersection, containment, continuity and union tests
// over their computed endpoints, where a whole-chapter start reads as verse 1
// and a whole-chapter end reads as the last verse of the chapter. Simplify
// uses them to reduce a Segment list to its minimal sorted form:
//
//	segs := ref.Simplify([]ref.Segment{
//	    ref.SingleVerse(1, 3),
//	    ref.SingleVerse(1, 1),
//	    ref.SingleVerse(1, 2),
//	})
//	// segs == []ref.Segment{ref.MultipleVerses(1, 1, 3)}
//
// # Parsing
//
// Parse splits the input at its first digit into a book part and a segment
// part. The book part is resolved through a Catalog (see package books);
// the segment part follows the grammar
//
//	segments := citation (';' citation)*
//	citation := segment (',' segment)*
//	segment  := point ('-' point)?
//	point    := chapter | chapter ':' verse | verse
//
// where a bare number is a verse once an earlier chapter:verse point in the
// same citation has set the chapter. Empty citations and segments are
// skipped; empty range endpoints are errors.
//
// ParseOSIS and Reference.OSIS convert to and from OSIS reference syntax
// ("Gen.1.1-Gen.1.5").
//
// All values are immutable and every function is safe for concurrent use.
package ref
