package gridrouter

// Path is an ordered list of raw-coordinate points describing a route.
type Path struct {
	Points []Point
}

// PathWithEndpoints pairs a Path with the original directed endpoints that
// requested it; the path itself is expressed in raw coordinates and runs
// from start's point to end's point, whether A* or the fallback L-shape
// produced it.
type PathWithEndpoints struct {
	Path  Path
	Start DirectedPoint
	End   DirectedPoint
}

func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// segments yields each traversed unit segment's raw index, in order,
// without emitting the same index twice in a row. See §4.4.
func (p Path) segments(area RawArea) []int {
	var out []int
	lastIdx := -1
	haveLast := false
	for i := 0; i+1 < len(p.Points); i++ {
		from, to := p.Points[i], p.Points[i+1]
		if from == to {
			continue
		}
		if from.X != to.X && from.Y != to.Y {
			continue
		}
		dx, dy := signInt(to.X-from.X), signInt(to.Y-from.Y)
		cur := from
		for cur != to {
			next := Point{cur.X + dx, cur.Y + dy}
			idx, ok := area.segmentIndexBetween(cur, next)
			if ok && (!haveLast || idx != lastIdx) {
				out = append(out, idx)
				lastIdx = idx
				haveLast = true
			}
			cur = next
		}
	}
	return out
}

// corners yields the raw index of each point at which the Manhattan step
// direction changes. See §4.4.
func (p Path) corners(area RawArea) []int {
	var out []int
	havePrevDir := false
	prevDX, prevDY := 0, 0
	lastIdx := -1
	haveLast := false

	for i := 0; i+1 < len(p.Points); i++ {
		from, to := p.Points[i], p.Points[i+1]
		dx, dy := to.X-from.X, to.Y-from.Y
		manhattan := (dx == 0) != (dy == 0) && (abs(dx)+abs(dy) > 0)
		if from == to {
			continue
		}
		if !manhattan {
			havePrevDir = false
			continue
		}
		sdx, sdy := signInt(dx), signInt(dy)
		if havePrevDir && (sdx != prevDX || sdy != prevDY) {
			rp, ok := area.pointToRawPoint(from)
			if ok && (!haveLast || int(rp) != lastIdx) {
				out = append(out, int(rp))
				lastIdx = int(rp)
				haveLast = true
			}
		}
		prevDX, prevDY = sdx, sdy
		havePrevDir = true
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// toDirectedPoints expands a PathWithEndpoints into a per-unit-step
// sequence of DirectedPoints. Intermediate points are emitted with the
// direction opposite their travel direction (an "arrival marker" pointing
// back along the edge); see §4.4 for the exact convention.
func (pe PathWithEndpoints) toDirectedPoints() []DirectedPoint {
	var out []DirectedPoint
	first := true

	for i := 0; i+1 < len(pe.Path.Points); i++ {
		from, to := pe.Path.Points[i], pe.Path.Points[i+1]
		if from == to {
			continue
		}
		if from.X != to.X && from.Y != to.Y {
			continue
		}
		dx, dy := signInt(to.X-from.X), signInt(to.Y-from.Y)
		travelDir := ManhattanDirection(from, Point{from.X + dx, from.Y + dy})

		var startDir Direction
		if first {
			startDir = pe.Start.Direction
		} else {
			startDir = travelDir
		}
		out = append(out, DirectedPoint{X: from.X, Y: from.Y, Direction: startDir})
		first = false

		cur := from
		for cur != to {
			next := Point{cur.X + dx, cur.Y + dy}
			if next == to {
				break
			}
			out = append(out, DirectedPoint{X: next.X, Y: next.Y, Direction: travelDir.Opposite()})
			cur = next
		}
	}

	out = append(out, DirectedPoint{X: pe.End.X, Y: pe.End.Y, Direction: pe.End.Direction.Opposite()})
	return out
}
