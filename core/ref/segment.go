package ref

import (
	"fmt"
	"math"
	"strconv"

	"github.com/FocuswithJustin/bibleref/core/errors"
)

// EndOfChapter is the verse number a whole-chapter end point reads as in
// interval comparisons.
const EndOfChapter = math.MaxInt

// Segment is a closed range of points. Either both ends designate whole
// chapters or both designate verses.
type Segment struct {
	start Point
	end   Point
}

// NewSegment returns the range start..end. It fails with an InvalidArgument
// error if start sorts after end or if exactly one end is a whole chapter.
func NewSegment(start, end Point) (Segment, error) {
	if !start.valid() || !end.valid() {
		return Segment{}, errors.NewInvalidArgument("segment points must have a chapter")
	}
	if start.Compare(end) > 0 {
		return Segment{}, errors.NewInvalidArgument(fmt.Sprintf("segment start %s is after end %s", start, end))
	}
	if start.IsWholeChapter() != end.IsWholeChapter() {
		return Segment{}, errors.NewInvalidArgument(fmt.Sprintf("segment %s-%s mixes a whole chapter with a verse", start, end))
	}
	return Segment{start: start, end: end}, nil
}

// SingleChapter returns the segment covering chapter. It panics on
// invalid arguments, as do the other literal factories.
func SingleChapter(chapter int) Segment {
	p := WholeChapter(chapter)
	return Segment{start: p, end: p}
}

// MultipleChapters returns the segment covering chapters from..to.
func MultipleChapters(from, to int) Segment {
	return must(NewSegment(WholeChapter(from), WholeChapter(to)))
}

// SingleVerse returns the segment covering chapter:verse.
func SingleVerse(chapter, verse int) Segment {
	if verse < 1 {
		panic(errors.NewInvalidArgument(fmt.Sprintf("verse must be greater than 0, got %d", verse)))
	}
	p := VersePoint(chapter, verse)
	return Segment{start: p, end: p}
}

// MultipleVerses returns the segment covering chapter:from through
// chapter:to.
func MultipleVerses(chapter, from, to int) Segment {
	if from < 1 {
		panic(errors.NewInvalidArgument(fmt.Sprintf("verse must be greater than 0, got %d", from)))
	}
	return must(NewSegment(VersePoint(chapter, from), VersePoint(chapter, to)))
}

func pointSegment(p Point) Segment {
	return Segment{start: p, end: p}
}

// Start returns the first point of the range as given.
func (s Segment) Start() Point { return s.start }

// End returns the last point of the range as given.
func (s Segment) End() Point { return s.end }

// ComputedStart returns Start with a whole chapter read as its verse 1.
func (s Segment) ComputedStart() Point {
	if s.start.verse == 0 {
		return Point{chapter: s.start.chapter, verse: 1}
	}
	return s.start
}

// ComputedEnd returns End with a whole chapter read as its last verse
// (EndOfChapter).
func (s Segment) ComputedEnd() Point {
	if s.end.verse == 0 {
		return Point{chapter: s.end.chapter, verse: EndOfChapter}
	}
	return s.end
}

// IsSingleVerse reports whether s covers exactly one verse.
func (s Segment) IsSingleVerse() bool {
	return s.ComputedStart() == s.ComputedEnd()
}

// HasIntersection reports whether s and other share at least one verse.
func (s Segment) HasIntersection(other Segment) bool {
	a, b := s.ComputedStart(), s.ComputedEnd()
	c, d := other.ComputedStart(), other.ComputedEnd()
	return (a.Compare(c) <= 0 && c.Compare(b) <= 0) || (c.Compare(a) <= 0 && a.Compare(d) <= 0)
}

// IsInside reports whether every verse of s is also covered by other.
func (s Segment) IsInside(other Segment) bool {
	return other.ComputedStart().Compare(s.ComputedStart()) <= 0 &&
		s.ComputedEnd().Compare(other.ComputedEnd()) <= 0
}

// Contains reports whether p falls within s. A whole-chapter p is
// contained only if all of its chapter is.
func (s Segment) Contains(p Point) bool {
	return pointSegment(p).IsInside(s)
}

// IsContinuous reports whether s and other abut with no gap: consecutive
// verses in one chapter, consecutive whole chapters, or a whole chapter
// followed by verse 1 of the next.
func (s Segment) IsContinuous(other Segment) bool {
	first, second := s, other
	if second.Compare(first) < 0 {
		first, second = second, first
	}
	prev, next := first.end, second.start

	switch {
	case prev.chapter == next.chapter:
		return prev.verse != 0 && next.verse != 0 && next.verse == prev.verse+1
	case next.chapter == prev.chapter+1:
		if prev.verse == 0 && next.verse == 0 {
			return true
		}
		return prev.verse == 0 && next.verse == 1
	default:
		return false
	}
}

// Union merges s and other. It returns the containing segment if one
// covers the other, a single spanning segment if they intersect or are
// continuous, and both segments in their original order otherwise.
//
// A span that would start with a whole chapter and end on a verse starts
// at verse 1 instead. A span that would start on a verse and end with a
// whole chapter has no representation; both segments are returned.
func (s Segment) Union(other Segment) []Segment {
	if other.IsInside(s) {
		return []Segment{s}
	}
	if s.IsInside(other) {
		return []Segment{other}
	}
	if !s.HasIntersection(other) && !s.IsContinuous(other) {
		return []Segment{s, other}
	}

	start := s.start
	if other.ComputedStart().Compare(s.ComputedStart()) < 0 {
		start = other.start
	}
	end := s.end
	if other.ComputedEnd().Compare(s.ComputedEnd()) > 0 {
		end = other.end
	}
	if start.verse == 0 && end.verse != 0 {
		start = Point{chapter: start.chapter, verse: 1}
	}

	merged, err := NewSegment(start, end)
	if err != nil {
		return []Segment{s, other}
	}
	return []Segment{merged}
}

// Compare orders segments by start, then end. It returns -1, 0 or +1.
func (s Segment) Compare(other Segment) int {
	if c := s.start.Compare(other.start); c != 0 {
		return c
	}
	return s.end.Compare(other.end)
}

// Less reports whether s sorts before other.
func (s Segment) Less(other Segment) bool { return s.Compare(other) < 0 }

// String renders the segment as "1", "1-2", "1:1", "1:1-5" or "1:5-2:3".
func (s Segment) String() string {
	switch {
	case s.start == s.end:
		return s.start.String()
	case s.start.chapter == s.end.chapter && s.start.verse != 0:
		return s.start.String() + "-" + strconv.Itoa(s.end.verse)
	default:
		return s.start.String() + "-" + s.end.String()
	}
}

// withinChapter reports whether s is a verse range inside one chapter.
func (s Segment) withinChapter() bool {
	return s.start.chapter == s.end.chapter && s.start.verse != 0
}

// verses renders the verse part of a single-chapter verse range ("5" or
// "5-7").
func (s Segment) verses() string {
	if s.start.verse == s.end.verse {
		return strconv.Itoa(s.start.verse)
	}
	return strconv.Itoa(s.start.verse) + "-" + strconv.Itoa(s.end.verse)
}
