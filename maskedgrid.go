package gridrouter

import "sort"

// MaskedGrid overlays a Grid with two usability bitmasks: which grid
// points are free of node interiors, and which segments are free to
// traverse (accounting for the 1-unit extrusion halo around each node).
type MaskedGrid struct {
	Grid         Grid
	PointMask    []bool
	SegmentMask  []bool
}

// nodeGridBounds finds the inclusive grid-coordinate range covering a
// node's interior, clamped to the grid's own bounds. See §4.3 step 1.
func nodeGridBounds(grid Grid, tl, br Point) (minGX, maxGX, minGY, maxGY int) {
	minGX = clampSearch(grid.XLines, tl.X, grid.Width, false)
	maxGX = clampSearch(grid.XLines, br.X, grid.Width, true)
	if minGX > maxGX {
		minGX = maxGX
	}
	minGY = clampSearch(grid.YLines, tl.Y, grid.Height, false)
	maxGY = clampSearch(grid.YLines, br.Y, grid.Height, true)
	if minGY > maxGY {
		minGY = maxGY
	}
	return
}

// clampSearch mirrors Rust's binary_search().unwrap_or_else(...) not-found
// handling: the min-axis call keeps the raw insertion index, while the
// max-axis call steps back one line first (idx.saturating_sub(1)), so a
// node edge that falls strictly between two grid lines collapses onto the
// nearest inside line rather than the line just outside it.
func clampSearch(lines []int, v int, bound int, maxAxis bool) int {
	idx := sort.SearchInts(lines, v)
	found := idx < len(lines) && lines[idx] == v
	if !found && maxAxis {
		if idx > 0 {
			idx--
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx > bound-1 {
		idx = bound - 1
	}
	return idx
}

// exactLineIndex returns the index of v in lines if v is present exactly,
// else (0, false).
func exactLineIndex(lines []int, v int) (int, bool) {
	idx := sort.SearchInts(lines, v)
	if idx < len(lines) && lines[idx] == v {
		return idx, true
	}
	return 0, false
}

func newMaskedGrid(grid Grid) MaskedGrid {
	mg := MaskedGrid{Grid: grid}
	mg.PointMask = make([]bool, grid.Size)
	mg.SegmentMask = make([]bool, grid.NumSegments)
	for i := range mg.PointMask {
		mg.PointMask[i] = true
	}
	for i := range mg.SegmentMask {
		mg.SegmentMask[i] = true
	}
	return mg
}

func (mg *MaskedGrid) maskPointsInBounds(minGX, maxGX, minGY, maxGY int, unremovable map[GridPoint]struct{}) {
	for gy := minGY; gy <= maxGY; gy++ {
		for gx := minGX; gx <= maxGX; gx++ {
			gp := mg.Grid.gridCoordsToGridPoint(gx, gy)
			if _, skip := unremovable[gp]; skip {
				continue
			}
			mg.PointMask[gp] = false
		}
	}
}

func (mg *MaskedGrid) maskVerticalSegmentsAtX(gx, minGY, maxGY int, unremovable map[GridPoint]struct{}) {
	start := minGY - 1
	if start < 0 {
		start = 0
	}
	end := minInt(mg.Grid.Height-2, maxGY)
	for gy := start; gy <= end; gy++ {
		a := mg.Grid.gridCoordsToGridPoint(gx, gy)
		b := mg.Grid.gridCoordsToGridPoint(gx, gy+1)
		_, aUn := unremovable[a]
		_, bUn := unremovable[b]
		if aUn && bUn {
			continue
		}
		seg := mg.Grid.gridCoordsToSegmentIndex(gx, gy, gx, gy+1)
		mg.SegmentMask[seg] = false
	}
}

func (mg *MaskedGrid) maskHorizontalSegmentsAtY(gy, minGX, maxGX int, unremovable map[GridPoint]struct{}) {
	start := minGX - 1
	if start < 0 {
		start = 0
	}
	end := minInt(mg.Grid.Width-2, maxGX)
	for gx := start; gx <= end; gx++ {
		a := mg.Grid.gridCoordsToGridPoint(gx, gy)
		b := mg.Grid.gridCoordsToGridPoint(gx+1, gy)
		_, aUn := unremovable[a]
		_, bUn := unremovable[b]
		if aUn && bUn {
			continue
		}
		seg := mg.Grid.gridCoordsToSegmentIndex(gx, gy, gx+1, gy)
		mg.SegmentMask[seg] = false
	}
}

// buildMaskedGrid masks every node interior and its 1-unit extrusion halo,
// preserving any grid point in the unremovable set. See §4.3.
func buildMaskedGrid(grid Grid, nodes []PlacedRectangularNode, unremovable map[GridPoint]struct{}) MaskedGrid {
	mg := newMaskedGrid(grid)

	for _, node := range nodes {
		tl, br := node.TopLeft(), node.BottomRight()
		minGX, maxGX, minGY, maxGY := nodeGridBounds(grid, tl, br)
		mg.maskPointsInBounds(minGX, maxGX, minGY, maxGY, unremovable)

		if gx, ok := exactLineIndex(grid.XLines, tl.X-1); ok {
			mg.maskVerticalSegmentsAtX(gx, minGY, maxGY, unremovable)
		}
		if gx, ok := exactLineIndex(grid.XLines, br.X+1); ok {
			mg.maskVerticalSegmentsAtX(gx, minGY, maxGY, unremovable)
		}
		if gy, ok := exactLineIndex(grid.YLines, tl.Y-1); ok {
			mg.maskHorizontalSegmentsAtY(gy, minGX, maxGX, unremovable)
		}
		if gy, ok := exactLineIndex(grid.YLines, br.Y+1); ok {
			mg.maskHorizontalSegmentsAtY(gy, minGX, maxGX, unremovable)
		}
	}

	return mg
}

// gridNeighbor is a candidate next A* state produced by fillNeighbors.
type gridNeighbor struct {
	Point       GridPoint
	Orientation Orientation
}

// fillNeighbors appends to buf the visibility neighbors of (gp, orient):
// motion within the current orientation gated by segment_mask, plus an
// unconditional in-place orientation flip. No diagonal neighbors are ever
// produced. See §4.3.
func (mg MaskedGrid) fillNeighbors(gp GridPoint, orient Orientation, buf []gridNeighbor) []gridNeighbor {
	gx, gy := mg.Grid.gridPointToGridCoords(gp)

	if orient == Horizontal {
		if gx > 0 {
			seg := mg.Grid.gridCoordsToSegmentIndex(gx-1, gy, gx, gy)
			if mg.SegmentMask[seg] {
				buf = append(buf, gridNeighbor{mg.Grid.gridCoordsToGridPoint(gx-1, gy), Horizontal})
			}
		}
		if gx < mg.Grid.Width-1 {
			seg := mg.Grid.gridCoordsToSegmentIndex(gx, gy, gx+1, gy)
			if mg.SegmentMask[seg] {
				buf = append(buf, gridNeighbor{mg.Grid.gridCoordsToGridPoint(gx+1, gy), Horizontal})
			}
		}
	} else {
		if gy > 0 {
			seg := mg.Grid.gridCoordsToSegmentIndex(gx, gy-1, gx, gy)
			if mg.SegmentMask[seg] {
				buf = append(buf, gridNeighbor{mg.Grid.gridCoordsToGridPoint(gx, gy-1), Vertical})
			}
		}
		if gy < mg.Grid.Height-1 {
			seg := mg.Grid.gridCoordsToSegmentIndex(gx, gy, gx, gy+1)
			if mg.SegmentMask[seg] {
				buf = append(buf, gridNeighbor{mg.Grid.gridCoordsToGridPoint(gx, gy+1), Vertical})
			}
		}
	}

	flip := Vertical
	if orient == Vertical {
		flip = Horizontal
	}
	buf = append(buf, gridNeighbor{gp, flip})

	return buf
}
