package optimize

import "github.com/oriole-pcb/gridroute/model"

// Serpentine length-matching parameters. A loop is one rectangular bump:
// step perpendicular by amplitude, run forward by minSegmentLength, step
// perpendicular by 2*amplitude the other way, run forward again, step
// back by amplitude to return to the baseline — four perpendicular legs
// of length amplitude contribute the extra length; the two forward runs
// replace an equal span of the original straight segment and add nothing.
const (
	defaultSerpentineAmplitude     = 0.5
	defaultSerpentineMinSpacing    = 0.3
	defaultSerpentineMinSegmentLen = 2.0
	serpentinePerLoopAddFactor     = 4.0
)

// GenerateTrombone replaces seg with a serpentine detour adding
// approximately targetLengthAdd extra length, using the given amplitude,
// minimum spacing between loop runs, and minimum straight-run length. It
// reports the actual length added, the number of loops used, and ok=false
// when seg is too short to fit even a single loop at these parameters (in
// which case the caller should try a different, longer segment instead).
func GenerateTrombone(seg model.Segment, targetLengthAdd, amplitude, minSpacing, minSegmentLength float64) (newSegs []model.Segment, lengthAdded float64, numLoops int, ok bool, msg string) {
	if targetLengthAdd <= 0 {
		return []model.Segment{seg}, 0, 0, true, "no length to add"
	}
	if amplitude <= 0 {
		amplitude = defaultSerpentineAmplitude
	}
	if minSpacing <= 0 {
		minSpacing = defaultSerpentineMinSpacing
	}
	if minSegmentLength <= 0 {
		minSegmentLength = defaultSerpentineMinSegmentLen
	}

	dx, dy := seg.Direction()
	if dx == 0 && dy == 0 {
		return []model.Segment{seg}, 0, 0, false, "segment has zero length"
	}
	px, py := -dy, dx // unit perpendicular

	loopSpan := 2*minSegmentLength + minSpacing
	maxLoops := int(seg.Length() / loopSpan)
	if maxLoops < 1 {
		return []model.Segment{seg}, 0, 0, false, "segment too short for a single loop"
	}
	perLoopAdd := serpentinePerLoopAddFactor * amplitude
	wanted := int(targetLengthAdd/perLoopAdd + 0.5)
	if wanted < 1 {
		wanted = 1
	}
	numLoops = wanted
	if numLoops > maxLoops {
		numLoops = maxLoops
	}

	used := float64(numLoops) * loopSpan
	leadIn := (seg.Length() - used) / 2

	x, y := seg.X1, seg.Y1
	segs := make([]model.Segment, 0, numLoops*4+2)
	advance := func(nx, ny float64) {
		if absf(nx-x) > mergeEpsilon || absf(ny-y) > mergeEpsilon {
			segs = append(segs, model.Segment{X1: x, Y1: y, X2: nx, Y2: ny, Width: seg.Width, Layer: seg.Layer, NetID: seg.NetID})
		}
		x, y = nx, ny
	}

	advance(seg.X1+dx*leadIn, seg.Y1+dy*leadIn)
	for l := 0; l < numLoops; l++ {
		advance(x+px*amplitude, y+py*amplitude)
		advance(x+dx*minSegmentLength, y+dy*minSegmentLength)
		advance(x-px*2*amplitude, y-py*2*amplitude)
		advance(x+dx*minSegmentLength, y+dy*minSegmentLength)
		advance(x+px*amplitude, y+py*amplitude)
		if l < numLoops-1 {
			advance(x+dx*minSpacing, y+dy*minSpacing)
		}
	}
	advance(seg.X2, seg.Y2)

	var total float64
	for _, s := range segs {
		total += s.Length()
	}
	lengthAdded = total - seg.Length()
	return segs, lengthAdded, numLoops, true, "ok"
}

// TuneLength runs a length-matching pass over route: if route's total
// length is short of targetLength, it picks the longest interior segment
// (never the first or last, which usually terminate at a pad or via) and
// expands it into a serpentine detour via GenerateTrombone to approach
// targetLength.
func TuneLength(route model.Route, targetLength, amplitude, minSpacing, minSegmentLength float64) model.Route {
	deficit := targetLength - route.TotalLength()
	if deficit <= mergeEpsilon || len(route.Segments) == 0 {
		return route
	}
	idx := longestInteriorSegment(route.Segments)
	if idx < 0 {
		return route
	}
	replacement, _, numLoops, ok, _ := GenerateTrombone(route.Segments[idx], deficit, amplitude, minSpacing, minSegmentLength)
	if !ok || numLoops == 0 {
		return route
	}
	out := make([]model.Segment, 0, len(route.Segments)+len(replacement))
	out = append(out, route.Segments[:idx]...)
	out = append(out, replacement...)
	out = append(out, route.Segments[idx+1:]...)
	result := route
	result.Segments = out
	return result
}

// longestInteriorSegment returns the index of the longest segment that
// isn't the first or last in the slice, or -1 when the slice has fewer
// than three segments (no interior to pick from).
func longestInteriorSegment(segs []model.Segment) int {
	best, bestLen := -1, 0.0
	for i := 1; i < len(segs)-1; i++ {
		if l := segs[i].Length(); l > bestLen {
			best, bestLen = i, l
		}
	}
	return best
}
