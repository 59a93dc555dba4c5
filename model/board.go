package model

import (
	"fmt"

	"github.com/oriole-pcb/gridroute/geom"
	"github.com/oriole-pcb/gridroute/layers"
	"github.com/oriole-pcb/gridroute/rules"
)

// PinRef names one (component, pin) connection point of a net.
type PinRef struct {
	Component string
	Pin       string
}

// Net is an electrically-equivalent set of pads that must all be joined by
// copper.
type Net struct {
	ID   int
	Name string
	Pins []PinRef
}

// Board is the parsed, language-neutral board model the router consumes:
// outline, components (with local pad footprints), nets, and the
// immutable rule/stack/via inputs. This is spec.md §6's BoardModel.
type Board struct {
	Outline    []geom.Vec2
	Components []Component
	Nets       []Net
	Rules      *rules.DesignRules
	Stack      *layers.LayerStack
	Vias       *layers.ViaRules
	Classes    rules.NetClassMap
}

// BBox returns the board outline's bounding box in mm.
func (b *Board) BBox() (minX, minY, maxX, maxY float64, err error) {
	if len(b.Outline) == 0 {
		return 0, 0, 0, 0, ErrEmptyBoard
	}
	minX, minY = b.Outline[0].X, b.Outline[0].Y
	maxX, maxY = minX, minY
	for _, p := range b.Outline[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY, nil
}

// componentByRef indexes components by reference designator for pin
// resolution.
func (b *Board) componentByRef() map[string]*Component {
	idx := make(map[string]*Component, len(b.Components))
	for i := range b.Components {
		idx[b.Components[i].Ref] = &b.Components[i]
	}
	return idx
}

// Pads resolves every pin reference of net netID to a board-absolute Pad.
// Returns ErrNetNotFound if netID does not exist, ErrPadNotFound if a pin
// reference does not resolve to any component/pad.
func (b *Board) Pads(netID int) ([]Pad, error) {
	var net *Net
	for i := range b.Nets {
		if b.Nets[i].ID == netID {
			net = &b.Nets[i]
			break
		}
	}
	if net == nil {
		return nil, ErrNetNotFound
	}

	byRef := b.componentByRef()
	out := make([]Pad, 0, len(net.Pins))
	for _, pin := range net.Pins {
		comp, ok := byRef[pin.Component]
		if !ok {
			return nil, fmt.Errorf("%w: component %q", ErrPadNotFound, pin.Component)
		}
		var tmpl *PadTemplate
		for i := range comp.Pads {
			if comp.Pads[i].Pin == pin.Pin {
				tmpl = &comp.Pads[i]
				break
			}
		}
		if tmpl == nil {
			return nil, fmt.Errorf("%w: %s pin %q", ErrPadNotFound, pin.Component, pin.Pin)
		}
		out = append(out, worldPad(*comp, *tmpl, net.ID, net.Name))
	}
	return out, nil
}

// worldPad rotates and translates a local PadTemplate into a board-absolute
// Pad, per spec.md §3: "position (board-absolute after rotation)".
func worldPad(c Component, t PadTemplate, netID int, netName string) Pad {
	local := geom.Vec2{X: t.OffsetX, Y: t.OffsetY}
	world := local.Rotate(c.Rotation).Add(geom.Vec2{X: c.X, Y: c.Y})
	layerList := t.Layers
	if len(layerList) == 0 {
		layerList = []int{c.Layer}
	}
	return Pad{
		Position:    Point{X: world.X, Y: world.Y, Layer: layerList[0]},
		Width:       t.Width,
		Height:      t.Height,
		Layers:      layerList,
		NetID:       netID,
		NetName:     netName,
		Component:   c.Ref,
		Pin:         t.Pin,
		ThroughHole: t.ThroughHole,
		Drill:       t.Drill,
	}
}

// AllPads returns every pad on the board across every net, used for
// obstacle stamping (a pad is an obstacle for every net except its own).
func (b *Board) AllPads() []Pad {
	var out []Pad
	for _, net := range b.Nets {
		pads, err := b.Pads(net.ID)
		if err != nil {
			continue
		}
		out = append(out, pads...)
	}
	return out
}
