package grid

import (
	"github.com/oriole-pcb/gridroute/layers"
	"github.com/oriole-pcb/gridroute/model"
)

// Grid is the dense (x, y, layer) cell array described in spec.md §4.2.
// Cell storage is flat and row-major per layer: cells[k*Height*Width +
// j*Width + i]. It is created once per routing session, mutated by
// obstacle stamping, path commits, and ripups, then discarded.
type Grid struct {
	Width, Height, Layers int
	Resolution            float64
	OriginX, OriginY      float64 // world coordinates of cell (0,0)

	cells []Cell
	stack *layers.LayerStack
	vias  *layers.ViaRules
}

// New builds a Grid spanning [originX, originX+width*res) x
// [originY, originY+height*res) at the given resolution, over the layers
// described by stack, with the via catalog vias for cross-layer neighbor
// gating.
func New(originX, originY float64, width, height, numLayers int, resolution float64, stack *layers.LayerStack, vias *layers.ViaRules) (*Grid, error) {
	if width <= 0 || height <= 0 || numLayers <= 0 {
		return nil, ErrEmptyGrid
	}
	return &Grid{
		Width: width, Height: height, Layers: numLayers,
		Resolution: resolution, OriginX: originX, OriginY: originY,
		cells: make([]Cell, width*height*numLayers),
		stack: stack, vias: vias,
	}, nil
}

// NewForBoard sizes a Grid to cover board's outline with a small margin
// (one resolution cell), using board.Rules.GridResolution and
// board.Stack.NumLayers.
func NewForBoard(board *model.Board) (*Grid, error) {
	minX, minY, maxX, maxY, err := board.BBox()
	if err != nil {
		return nil, err
	}
	res := board.Rules.GridResolution
	margin := res
	w := int((maxX-minX)/res) + 3
	h := int((maxY-minY)/res) + 3
	return New(minX-margin, minY-margin, w, h, board.Stack.NumLayers(), res, board.Stack, board.Vias)
}

// WorldToGrid converts a world (mm) coordinate to integer grid indices,
// rounding ties away from zero, per spec.md §4.2.
func (g *Grid) WorldToGrid(x, y float64) (i, j int) {
	i = int(model.RoundAwayFromZero((x - g.OriginX) / g.Resolution))
	j = int(model.RoundAwayFromZero((y - g.OriginY) / g.Resolution))
	return i, j
}

// GridToWorld converts grid indices back to the cell's world-space center.
func (g *Grid) GridToWorld(i, j int) (x, y float64) {
	return g.OriginX + float64(i)*g.Resolution, g.OriginY + float64(j)*g.Resolution
}

// InBounds reports whether (i, j, k) lies within the grid extent.
func (g *Grid) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.Width && j >= 0 && j < g.Height && k >= 0 && k < g.Layers
}

// index maps (i, j, k) to its flat slice offset. Callers must check
// InBounds first.
func (g *Grid) index(i, j, k int) int {
	return k*g.Width*g.Height + j*g.Width + i
}

// At returns a pointer to the cell at (i, j, k) for in-place mutation, or
// nil if out of bounds.
func (g *Grid) At(i, j, k int) *Cell {
	if !g.InBounds(i, j, k) {
		return nil
	}
	return &g.cells[g.index(i, j, k)]
}

// CellNet returns the net owning (i, j, k), or 0 if empty or out of
// bounds.
func (g *Grid) CellNet(i, j, k int) int32 {
	c := g.At(i, j, k)
	if c == nil {
		return 0
	}
	return c.Net
}

// IsBlockedForNet reports whether (i, j, k) blocks netID: out of bounds,
// permanently blocked, or owned by a different net.
func (g *Grid) IsBlockedForNet(i, j, k int, netID int32) bool {
	c := g.At(i, j, k)
	if c == nil {
		return true
	}
	return c.BlocksForeign(netID)
}

// MarkNet claims (i, j, k) for netID, incrementing its usage count only
// the first time netID claims it. usage_count tracks the number of
// distinct nets occupying a cell (spec.md §3's invariant (b)); a net
// whose solution touches the same cell more than once — e.g. the shared
// junction cell of a multi-pin net's Steiner branches — must not inflate
// its own usage_count past 1.
func (g *Grid) MarkNet(i, j, k int, netID int32) {
	c := g.At(i, j, k)
	if c == nil {
		return
	}
	if c.Net == netID && c.UsageCount > 0 {
		return
	}
	c.Net = netID
	c.UsageCount++
}

// Unmark releases (i, j, k) from netID, clearing its usage count and
// ownership. A no-op if netID doesn't currently own the cell. Used by
// ripup.
func (g *Grid) Unmark(i, j, k int, netID int32) {
	c := g.At(i, j, k)
	if c == nil || c.Net != netID {
		return
	}
	c.UsageCount = 0
	c.Net = 0
}

// AddHistoryCost adds delta to the accumulated history-cost penalty at
// (i, j, k). history_cost is monotonically non-decreasing within a
// session (spec.md §3), so callers must only pass delta >= 0.
func (g *Grid) AddHistoryCost(i, j, k int, delta float32) {
	c := g.At(i, j, k)
	if c == nil {
		return
	}
	c.HistoryCost += delta
}

// Stack returns the layer stack backing this grid.
func (g *Grid) Stack() *layers.LayerStack { return g.stack }

// Vias returns the via catalog backing this grid.
func (g *Grid) Vias() *layers.ViaRules { return g.vias }
