package grid

import (
	"fmt"

	"github.com/oriole-pcb/gridroute/model"
)

// CheckInvariants verifies spec.md §8's invariant 1: usage_count at every
// cell equals the number of committed routes whose segments or vias
// actually occupy it. Callers pass the full set of currently-committed
// routes. Called from tests only — never on the hot path, per spec.md §7's
// guidance that
// invariant_violation checks belong at debug level only.
func (g *Grid) CheckInvariants(routes []model.Route) error {
	counts := make(map[[3]int]int)
	for _, r := range routes {
		touched := make(map[[3]int]bool)
		for _, s := range r.Segments {
			for _, key := range g.segmentCellKeys(s) {
				touched[key] = true
			}
		}
		for _, v := range r.Vias {
			i, j := g.WorldToGrid(v.X, v.Y)
			for k := v.LayerFrom; ; {
				touched[[3]int{i, j, k}] = true
				if k == v.LayerTo {
					break
				}
				if k < v.LayerTo {
					k++
				} else {
					k--
				}
			}
		}
		for key := range touched {
			counts[key]++
		}
	}

	for key, want := range counts {
		c := g.At(key[0], key[1], key[2])
		if c == nil {
			return fmt.Errorf("%w: committed cell (%d,%d,%d) outside grid", ErrInvariantViolation, key[0], key[1], key[2])
		}
		if int(c.UsageCount) != want {
			return fmt.Errorf("%w: cell (%d,%d,%d) usage_count=%d, want %d", ErrInvariantViolation, key[0], key[1], key[2], c.UsageCount, want)
		}
	}
	return nil
}

// segmentCellKeys enumerates the grid cells a straight segment passes
// through, by sampling at half-cell steps along its length.
func (g *Grid) segmentCellKeys(s model.Segment) [][3]int {
	length := s.Length()
	if length == 0 {
		i, j := g.WorldToGrid(s.X1, s.Y1)
		return [][3]int{{i, j, s.Layer}}
	}
	steps := int(length/(g.Resolution/2)) + 1
	seen := make(map[[3]int]bool, steps)
	var out [][3]int
	for n := 0; n <= steps; n++ {
		t := float64(n) / float64(steps)
		x := s.X1 + t*(s.X2-s.X1)
		y := s.Y1 + t*(s.Y2-s.Y1)
		i, j := g.WorldToGrid(x, y)
		key := [3]int{i, j, s.Layer}
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
