package ref

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/FocuswithJustin/bibleref/core/errors"
)

// Point is a chapter/verse coordinate. A verse of 0 designates the whole
// chapter. The zero value is not a valid Point.
type Point struct {
	chapter int
	verse   int
}

// NewPoint returns the point chapter:verse. The chapter must be at least 1
// and the verse at least 0.
func NewPoint(chapter, verse int) (Point, error) {
	if chapter < 1 {
		return Point{}, errors.NewInvalidArgument(fmt.Sprintf("chapter must be greater than 0, got %d", chapter))
	}
	if verse < 0 {
		return Point{}, errors.NewInvalidArgument(fmt.Sprintf("verse cannot be negative, got %d", verse))
	}
	return Point{chapter: chapter, verse: verse}, nil
}

// WholeChapter returns the point designating all of chapter.
// It panics if chapter is less than 1.
func WholeChapter(chapter int) Point {
	return must(NewPoint(chapter, 0))
}

// VersePoint returns the point chapter:verse. It panics on invalid arguments.
func VersePoint(chapter, verse int) Point {
	return must(NewPoint(chapter, verse))
}

// Chapter returns the chapter number.
func (p Point) Chapter() int { return p.chapter }

// Verse returns the verse number, or 0 for a whole chapter.
func (p Point) Verse() int { return p.verse }

// IsWholeChapter reports whether p designates an entire chapter.
func (p Point) IsWholeChapter() bool { return p.verse == 0 }

// Compare orders points by chapter, then verse. It returns -1, 0 or +1.
func (p Point) Compare(other Point) int {
	if c := cmp.Compare(p.chapter, other.chapter); c != 0 {
		return c
	}
	return cmp.Compare(p.verse, other.verse)
}

// Less reports whether p sorts before other.
func (p Point) Less(other Point) bool { return p.Compare(other) < 0 }

// String renders "c" for a whole chapter and "c:v" otherwise.
func (p Point) String() string {
	if p.verse == 0 {
		return strconv.Itoa(p.chapter)
	}
	return strconv.Itoa(p.chapter) + ":" + strconv.Itoa(p.verse)
}

func (p Point) valid() bool {
	return p.chapter >= 1 && p.verse >= 0
}

// must unwraps the result of a validating constructor for the literal
// factories, which treat invalid arguments as programmer error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
