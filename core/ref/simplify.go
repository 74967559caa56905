package ref

import (
	"slices"
)

// Simplify reduces segs to the minimal sorted list covering the same
// verses, with no two segments intersecting or continuous. The input is
// not modified.
//
// Pairs whose union cannot be expressed as a single segment (a verse start
// running into a whole-chapter end) are left as they are, so the result
// can still hold two intersecting segments: [1:5-2:3, 2, 3] simplifies to
// [1:5-2:3, 2-3].
func Simplify(segs []Segment) []Segment {
	out := slices.Clone(segs)
	slices.SortFunc(out, Segment.Compare)
	out = slices.Compact(out)

	for merged := true; merged; {
		out, merged = mergeFirst(out)
	}

	slices.SortFunc(out, Segment.Compare)
	return out
}

// mergeFirst replaces the first mergeable pair in segs with its union.
func mergeFirst(segs []Segment) ([]Segment, bool) {
	for i := range segs {
		for j := range segs {
			if i == j {
				continue
			}
			a, b := segs[i], segs[j]
			if !a.HasIntersection(b) && !a.IsContinuous(b) {
				continue
			}
			u := a.Union(b)
			if len(u) != 1 {
				continue
			}

			merged := make([]Segment, 0, len(segs)-1)
			merged = append(merged, u[0])
			for k, s := range segs {
				if k != i && k != j {
					merged = append(merged, s)
				}
			}
			return merged, true
		}
	}
	return segs, false
}
