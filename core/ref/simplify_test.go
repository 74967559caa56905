package ref

import (
	"math/rand"
	"slices"
	"testing"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		in   []Segment
		want []Segment
	}{
		{
			name: "duplicate chapters",
			in:   []Segment{SingleChapter(1), SingleChapter(1)},
			want: []Segment{SingleChapter(1)},
		},
		{
			name: "duplicate verses",
			in:   []Segment{SingleVerse(1, 1), SingleVerse(1, 1)},
			want: []Segment{SingleVerse(1, 1)},
		},
		{
			name: "duplicate ranges",
			in:   []Segment{MultipleVerses(1, 1, 3), MultipleVerses(1, 1, 3)},
			want: []Segment{MultipleVerses(1, 1, 3)},
		},
		{
			name: "verse inside chapter",
			in:   []Segment{SingleChapter(1), SingleVerse(1, 1)},
			want: []Segment{SingleChapter(1)},
		},
		{
			name: "verse inside range",
			in:   []Segment{MultipleVerses(1, 1, 3), SingleVerse(1, 1)},
			want: []Segment{MultipleVerses(1, 1, 3)},
		},
		{
			name: "consecutive verses",
			in:   []Segment{SingleVerse(1, 1), SingleVerse(1, 2), SingleVerse(1, 3)},
			want: []Segment{MultipleVerses(1, 1, 3)},
		},
		{
			name: "range contains cross-chapter range",
			in:   []Segment{span(1, 5, 2, 4), span(1, 8, 1, 15)},
			want: []Segment{span(1, 5, 2, 4)},
		},
		{
			name: "contained range first",
			in:   []Segment{span(1, 8, 1, 15), span(1, 5, 2, 4)},
			want: []Segment{span(1, 5, 2, 4)},
		},
		{
			name: "partial overlap",
			in:   []Segment{span(1, 5, 1, 15), span(1, 8, 2, 4)},
			want: []Segment{span(1, 5, 2, 4)},
		},
		{
			name: "partial overlap reversed",
			in:   []Segment{span(1, 8, 2, 4), span(1, 5, 1, 15)},
			want: []Segment{span(1, 5, 2, 4)},
		},
		{
			name: "gap",
			in:   []Segment{SingleVerse(1, 1), SingleVerse(1, 3)},
			want: []Segment{SingleVerse(1, 1), SingleVerse(1, 3)},
		},
		{
			name: "chain across chapters",
			in:   []Segment{span(1, 2, 2, 4), SingleVerse(1, 2), MultipleVerses(2, 1, 5)},
			want: []Segment{span(1, 2, 2, 5)},
		},
		{
			name: "consecutive chapters",
			in:   []Segment{SingleChapter(1), SingleChapter(2)},
			want: []Segment{MultipleChapters(1, 2)},
		},
		{
			name: "chapter then first verse",
			in:   []Segment{SingleChapter(1), SingleVerse(2, 1)},
			want: []Segment{span(1, 1, 2, 1)},
		},
		{
			name: "unordered",
			in:   []Segment{SingleVerse(3, 1), SingleChapter(1), SingleVerse(1, 7), MultipleVerses(3, 2, 4)},
			want: []Segment{SingleChapter(1), MultipleVerses(3, 1, 4)},
		},
		{
			name: "chapter run",
			in:   []Segment{SingleChapter(4), SingleChapter(2), SingleChapter(3), SingleChapter(6)},
			want: []Segment{MultipleChapters(2, 4), SingleChapter(6)},
		},
		{
			name: "verse span overlapping whole chapters",
			in:   []Segment{SingleChapter(3), span(1, 5, 2, 3), SingleChapter(2)},
			want: []Segment{span(1, 5, 2, 3), MultipleChapters(2, 3)},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Simplify(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSimplifyDoesNotModifyInput(t *testing.T) {
	in := []Segment{SingleVerse(1, 3), SingleVerse(1, 2), SingleVerse(1, 1)}
	orig := slices.Clone(in)
	Simplify(in)
	if !slices.Equal(in, orig) {
		t.Errorf("Simplify modified its input: %v", in)
	}
}

// randomSegments returns n segments confined to a few chapters so that
// overlaps and adjacencies are common.
func randomSegments(rng *rand.Rand, n int) []Segment {
	segs := make([]Segment, n)
	for i := range segs {
		c := rng.Intn(3) + 1
		switch rng.Intn(4) {
		case 0:
			segs[i] = SingleChapter(c)
		case 1:
			segs[i] = MultipleChapters(c, c+rng.Intn(2))
		case 2:
			segs[i] = SingleVerse(c, rng.Intn(8)+1)
		default:
			v := rng.Intn(8) + 1
			segs[i] = MultipleVerses(c, v, v+rng.Intn(4))
		}
	}
	return segs
}

func TestSimplifyIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		in := randomSegments(rng, rng.Intn(8))
		once := Simplify(in)
		if twice := Simplify(once); !slices.Equal(once, twice) {
			t.Fatalf("Simplify not idempotent for %v: %v then %v", in, once, twice)
		}
	}
}

func TestSimplifyPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		in := randomSegments(rng, rng.Intn(8))
		want := Simplify(in)

		shuffled := slices.Clone(in)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Simplify(shuffled); !slices.Equal(got, want) {
			t.Fatalf("Simplify(%v) = %v, but Simplify(%v) = %v", in, want, shuffled, got)
		}
	}
}

func TestSimplifyPreservesCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		in := randomSegments(rng, rng.Intn(8)+1)
		out := Simplify(in)

		for c := 1; c <= 5; c++ {
			for v := 1; v <= 14; v++ {
				p := VersePoint(c, v)
				if covered(in, p) != covered(out, p) {
					t.Fatalf("coverage of %v differs: in %v, out %v", p, in, out)
				}
			}
		}
		for j := 0; j+1 < len(out); j++ {
			if !out[j].Less(out[j+1]) {
				t.Fatalf("Simplify output not sorted: %v", out)
			}
		}
	}
}

func TestUnionCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 1000; i++ {
		pair := randomSegments(rng, 2)
		a, b := pair[0], pair[1]
		if !a.HasIntersection(b) && !a.IsContinuous(b) {
			continue
		}
		u := a.Union(b)
		for c := 1; c <= 5; c++ {
			for v := 1; v <= 14; v++ {
				p := VersePoint(c, v)
				want := a.Contains(p) || b.Contains(p)
				n := 0
				for _, s := range u {
					if s.Contains(p) {
						n++
					}
				}
				if want && n == 0 {
					t.Fatalf("%v.Union(%v) = %v loses %v", a, b, u, p)
				}
				if len(u) == 1 && want != (n == 1) {
					t.Fatalf("%v.Union(%v) = %v covers %v incorrectly", a, b, u, p)
				}
			}
		}
	}
}

func covered(segs []Segment, p Point) bool {
	for _, s := range segs {
		if s.Contains(p) {
			return true
		}
	}
	return false
}
