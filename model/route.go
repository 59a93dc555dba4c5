package model

// NetStatus reports the outcome of routing one net.
type NetStatus int

const (
	// Routed indicates every pad of the net is connected, no violations.
	Routed NetStatus = iota
	// Partial indicates some but not all pads are connected, or the route
	// shares cells with a foreign net (only possible transiently between
	// congestion-driver iterations).
	Partial
	// Unrouted indicates no usable path was found for the net at all.
	Unrouted
)

// String names the status the way a diagnostic log line would.
func (s NetStatus) String() string {
	switch s {
	case Routed:
		return "routed"
	case Partial:
		return "partial"
	default:
		return "unrouted"
	}
}

// Route is one net's routing solution: its segments and vias. The
// segments and vias, read as undirected edges joined at shared endpoints
// or via positions, must form a connected graph spanning every pad when
// Status == Routed (spec.md §3).
type Route struct {
	NetID   int
	NetName string
	Status  NetStatus
	Segments []Segment
	Vias     []ViaInstance
}

// TotalLength sums the Euclidean length of every segment in mm.
func (r Route) TotalLength() float64 {
	var total float64
	for _, s := range r.Segments {
		total += s.Length()
	}
	return total
}

// ViaCount returns the number of vias in the route.
func (r Route) ViaCount() int { return len(r.Vias) }

// RoundTo001 returns a copy of r with every segment and via rounded to
// 0.001 mm, for wire emission (spec.md §6).
func (r Route) RoundTo001() Route {
	out := r
	out.Segments = make([]Segment, len(r.Segments))
	for i, s := range r.Segments {
		out.Segments[i] = s.RoundTo001()
	}
	out.Vias = make([]ViaInstance, len(r.Vias))
	for i, v := range r.Vias {
		out.Vias[i] = v.RoundTo001()
	}
	return out
}
