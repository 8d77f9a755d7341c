package gridrouter

import (
	"fmt"
	"sort"
)

// RawPoint, GridPoint and GridSegment are packed integer indices into,
// respectively, a RawArea, a Grid's point space, and a Grid's segment
// space. They are distinct types only to prevent accidental mixing; the
// underlying representation is a plain int.
type RawPoint int
type GridPoint int
type GridSegment int

// Grid is a rectangular non-uniform grid described by strictly increasing
// sorted coordinate lines. See the data model notes for the index layout
// of GridPoint (row-major) and GridSegment (horizontal block, then
// vertical block, column-major).
type Grid struct {
	MinX, MinY, MaxX, MaxY int
	Width, Height          int
	Size                   int
	NumSegments            int
	XLines, YLines         []int
}

func newGrid(xLines, yLines []int) Grid {
	width, height := len(xLines), len(yLines)
	g := Grid{
		MinX: xLines[0], MaxX: xLines[width-1],
		MinY: yLines[0], MaxY: yLines[height-1],
		Width: width, Height: height,
		Size:        width * height,
		NumSegments: (width-1)*height + (height-1)*width,
		XLines:      xLines, YLines: yLines,
	}
	return g
}

// buildLinesFromCoords expands a sorted, deduplicated coordinate set into
// the final line vector, inserting intermediate lines at gaps so A* has
// room to route around obstacles without exploding the grid. See §4.1.
func buildLinesFromCoords(values []int) []int {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	unique := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}

	if len(unique) == 0 {
		return nil
	}

	lines := []int{unique[0]}
	for i := 1; i < len(unique); i++ {
		prev, next := unique[i-1], unique[i]
		if next-prev > 5 {
			lines = append(lines, prev+2)
		}
		if next-prev > 1 {
			lines = append(lines, (prev+next)/2)
		}
		if next-prev > 5 {
			lines = append(lines, next-2)
		}
		lines = append(lines, next)
	}
	return lines
}

// ensureMinMax inserts v into lines if absent, keeping the slice sorted
// and unique.
func ensureMinMax(lines []int, v int) []int {
	if len(lines) == 0 {
		return []int{v}
	}
	idx := sort.SearchInts(lines, v)
	if idx < len(lines) && lines[idx] == v {
		return lines
	}
	out := make([]int, 0, len(lines)+1)
	out = append(out, lines[:idx]...)
	out = append(out, v)
	out = append(out, lines[idx:]...)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// buildGrid derives x_lines/y_lines from the batch's edge endpoints and
// placed nodes, per §4.1.
func buildGrid(endpoints []Point, nodes []PlacedRectangularNode) Grid {
	xSet := make(map[int]struct{})
	ySet := make(map[int]struct{})
	for _, p := range endpoints {
		xSet[p.X] = struct{}{}
		ySet[p.Y] = struct{}{}
	}
	xs := make([]int, 0, len(xSet))
	for x := range xSet {
		xs = append(xs, x)
	}
	ys := make([]int, 0, len(ySet))
	for y := range ySet {
		ys = append(ys, y)
	}

	xLines := buildLinesFromCoords(xs)
	yLines := buildLinesFromCoords(ys)

	minNodesX, maxNodesX := xLines[0], xLines[len(xLines)-1]
	minNodesY, maxNodesY := yLines[0], yLines[len(yLines)-1]
	haveNodeBounds := false
	for _, n := range nodes {
		tl, br := n.TopLeft(), n.BottomRight()
		if !haveNodeBounds {
			minNodesX, maxNodesX = tl.X, br.X
			minNodesY, maxNodesY = tl.Y, br.Y
			haveNodeBounds = true
			continue
		}
		minNodesX = minInt(minNodesX, tl.X)
		maxNodesX = maxInt(maxNodesX, br.X)
		minNodesY = minInt(minNodesY, tl.Y)
		maxNodesY = maxInt(maxNodesY, br.Y)
	}

	minX := minInt(minNodesX-3, xLines[0]-3)
	maxX := maxInt(maxNodesX+3, xLines[len(xLines)-1]+3)
	minY := minInt(minNodesY-3, yLines[0]-3)
	maxY := maxInt(maxNodesY+3, yLines[len(yLines)-1]+3)

	xLines = ensureMinMax(xLines, minX)
	xLines = ensureMinMax(xLines, maxX)
	yLines = ensureMinMax(yLines, minY)
	yLines = ensureMinMax(yLines, maxY)

	return newGrid(xLines, yLines)
}

func (g Grid) gridPointToGridCoords(gp GridPoint) (gx, gy int) {
	idx := int(gp)
	return idx % g.Width, idx / g.Width
}

func (g Grid) gridCoordsToGridPoint(gx, gy int) GridPoint {
	return GridPoint(gy*g.Width + gx)
}

// pointToGridPoint resolves a plane Point to a GridPoint via binary search
// on the grid lines. Returns false if the point does not coincide with a
// grid line in both axes.
func (g Grid) pointToGridPoint(p Point) (GridPoint, bool) {
	xi := sort.SearchInts(g.XLines, p.X)
	if xi >= len(g.XLines) || g.XLines[xi] != p.X {
		return 0, false
	}
	yi := sort.SearchInts(g.YLines, p.Y)
	if yi >= len(g.YLines) || g.YLines[yi] != p.Y {
		return 0, false
	}
	return g.gridCoordsToGridPoint(xi, yi), true
}

func (g Grid) gridPointToPoint(gp GridPoint) Point {
	gx, gy := g.gridPointToGridCoords(gp)
	return Point{g.XLines[gx], g.YLines[gy]}
}

func (g Grid) gridPointToRawPoint(gp GridPoint) RawPoint {
	p := g.gridPointToPoint(gp)
	ra := g.rawArea()
	rp, ok := ra.pointToRawPoint(p)
	if !ok {
		panic("gridrouter: grid point outside its own raw area")
	}
	return rp
}

// rawArea derives the RawArea directly from the grid's own min/max lines.
// It is not independently padded: the padding of 3 is already folded into
// the grid's min/max during buildGrid.
func (g Grid) rawArea() RawArea {
	return newRawArea(Point{g.MinX, g.MinY}, Point{g.MaxX, g.MaxY})
}

// gridCoordsToSegmentIndex returns the segment index between two
// orthogonally adjacent grid coordinates. Panics if they are not adjacent;
// callers must never pass a non-adjacency, per the data model invariant.
func (g Grid) gridCoordsToSegmentIndex(fromX, fromY, toX, toY int) GridSegment {
	if fromY == toY {
		minX := minInt(fromX, toX)
		if maxInt(fromX, toX)-minX != 1 {
			panic(fmt.Sprintf("gridrouter: non-adjacent grid coords (%d,%d)-(%d,%d)", fromX, fromY, toX, toY))
		}
		return GridSegment(fromY*(g.Width-1) + minX)
	}
	if fromX == toX {
		minY := minInt(fromY, toY)
		if maxInt(fromY, toY)-minY != 1 {
			panic(fmt.Sprintf("gridrouter: non-adjacent grid coords (%d,%d)-(%d,%d)", fromX, fromY, toX, toY))
		}
		return GridSegment((g.Width-1)*g.Height + fromX*(g.Height-1) + minY)
	}
	panic(fmt.Sprintf("gridrouter: non-adjacent grid coords (%d,%d)-(%d,%d)", fromX, fromY, toX, toY))
}
