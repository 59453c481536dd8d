package geom

// ReduceSegments cancels the overlapping parts of collinear segments so that
// the edges shared by adjacent rectangles disappear and only the outer
// boundary remains.
//
// Every unordered pair (i < j, in input order) with the same alignment and
// the same perpendicular coordinate whose spans touch is trimmed in place:
// each member is replaced by its span minus the overlap with the other. Later
// pairs see the already trimmed spans. Segments of length <= Epsilon are
// dropped from the result.
//
// The reduction is pairwise and order dependent. Three or more mutually
// overlapping collinear segments may leave a remainder that an interval
// merge would have cancelled; that behavior is kept as is.
func ReduceSegments(segs []Segment) []Segment {
	result := make([]Segment, len(segs))
	copy(result, segs)

	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			s1, s2 := result[i], result[j]
			if !collinear(s1, s2) {
				continue
			}
			a1, b1 := span(s1)
			a2, b2 := span(s2)
			if b1 < a2 || b2 < a1 {
				continue
			}
			result[i] = subtractOverlap(s1, s2)
			result[j] = subtractOverlap(s2, s1)
		}
	}

	kept := result[:0]
	for _, s := range result {
		if !s.Degenerate() {
			kept = append(kept, s)
		}
	}
	return kept
}

// collinear reports whether s1 and s2 share alignment and lie on the same
// line. Alignment is decided on the horizontal test alone, so a degenerate
// segment is classified as horizontal.
func collinear(s1, s2 Segment) bool {
	h1, h2 := s1.Horizontal(), s2.Horizontal()
	if h1 != h2 {
		return false
	}
	if h1 {
		return NearlyEqual(s1.Start.Y, s2.Start.Y)
	}
	return NearlyEqual(s1.Start.X, s2.Start.X)
}

// span returns the 1-D extent of s along its own axis.
func span(s Segment) (start, end float64) {
	if s.Horizontal() {
		return s.Start.X, s.End.X
	}
	return s.Start.Y, s.End.Y
}

// at builds the point at parameter v on the line carrying s.
func at(s Segment, v float64) Point {
	if s.Horizontal() {
		return Pt(v, s.Start.Y)
	}
	return Pt(s.Start.X, v)
}

// subtractOverlap returns s1 minus its overlap with s2.
//
// An overlap strictly inside s1 keeps only the part before it; the part after
// the overlap is discarded.
func subtractOverlap(s1, s2 Segment) Segment {
	a1, b1 := span(s1)
	a2, b2 := span(s2)

	lo := max(a1, a2)
	hi := min(b1, b2)

	switch {
	case hi <= lo:
		return s1
	case lo <= a1 && hi >= b1:
		p := at(s1, a1)
		return Segment{Start: p, End: p}
	case lo <= a1:
		return Segment{Start: at(s1, hi), End: at(s1, b1)}
	default:
		return Segment{Start: at(s1, a1), End: at(s1, lo)}
	}
}
