package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/ModuPlan/internal/geom"
	"github.com/piwi3910/ModuPlan/internal/model"
)

// chainTolerance is the endpoint distance at which loose LINEs are joined.
const chainTolerance = 0.01

type outline []geom.Point

func (o outline) bounds() (min, max geom.Point) {
	min = geom.Pt(math.MaxFloat64, math.MaxFloat64)
	max = geom.Pt(-math.MaxFloat64, -math.MaxFloat64)
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// area computes the absolute polygon area using the shoelace formula.
func (o outline) area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(a) / 2
}

// ImportDXF imports module types from a DXF file. Every closed LWPOLYLINE
// and every closed chain of LINEs becomes a module type sized by its
// bounding box. Shapes that are not rectangles are imported with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []geom.Segment
	skipped := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			o := make(outline, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				o = append(o, geom.Pt(v[0], v[1]))
			}
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, geom.Segment{
				Start: geom.Pt(e.Start[0], e.Start[1]),
				End:   geom.Pt(e.End[0], e.End[1]),
			})

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	index := 0
	for _, o := range outlines {
		min, max := o.bounds()
		length := max.X - min.X
		width := max.Y - min.Y

		if length < chainTolerance || width < chainTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", length, width))
			continue
		}

		index++
		label := fmt.Sprintf("DXF Type %d", index)
		if math.Abs(o.area()-length*width) > chainTolerance*(length+width) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s is not a rectangle, using its %.2f x %.2f bounding box", label, length, width))
		}

		result.ModuleTypes = append(result.ModuleTypes, model.NewModuleType(label, length, width))
	}

	return result
}

// chainSegments connects individual segments into closed outlines.
// Open chains are dropped.
func chainSegments(segs []geom.Segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := outline{segs[start].Start, segs[start].End}

		for changed := true; changed; {
			changed = false
			tail := chain[len(chain)-1]
			for i, s := range segs {
				if used[i] {
					continue
				}
				if tail.Dist(s.Start) <= tolerance {
					chain = append(chain, s.End)
				} else if tail.Dist(s.End) <= tolerance {
					chain = append(chain, s.Start)
				} else {
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		if len(chain) >= 4 && chain[0].Dist(chain[len(chain)-1]) <= tolerance {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	// Largest first for a stable order
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].area() > outlines[j].area()
	})
	return outlines
}
