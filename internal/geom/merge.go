package geom

import "sort"

// MergeCollinear joins segments that lie on the same line and touch or
// overlap end to end. The covered point set is unchanged; only the number
// of pieces shrinks. The result is ordered horizontal segments first, then
// by perpendicular coordinate, then by start.
func MergeCollinear(segs []Segment) []Segment {
	if len(segs) < 2 {
		out := make([]Segment, len(segs))
		copy(out, segs)
		return out
	}

	sorted := make([]Segment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ha, hb := a.Horizontal(), b.Horizontal()
		if ha != hb {
			return ha
		}
		pa, pb := lineCoord(a), lineCoord(b)
		if !NearlyEqual(pa, pb) {
			return pa < pb
		}
		sa, _ := span(a)
		sb, _ := span(b)
		return sa < sb
	})

	merged := []Segment{sorted[0]}
	for _, s := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if collinear(*cur, s) {
			_, curEnd := span(*cur)
			start, end := span(s)
			if start <= curEnd+Epsilon {
				if end > curEnd {
					cur.End = at(*cur, end)
				}
				continue
			}
		}
		merged = append(merged, s)
	}
	return merged
}

// Outline reduces segs and joins the collinear remainders.
func Outline(segs []Segment) []Segment {
	return MergeCollinear(ReduceSegments(segs))
}

// lineCoord returns the coordinate perpendicular to the segment's axis.
func lineCoord(s Segment) float64 {
	if s.Horizontal() {
		return s.Start.Y
	}
	return s.Start.X
}
