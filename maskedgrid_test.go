package gridrouter

import "testing"

func TestBuildMaskedGridMasksNodeInteriorAndHalo(t *testing.T) {
	node := PlacedRectangularNode{
		Center: Point{X: 5, Y: 5},
		Node:   RectangularNode{Size: Size{Width: 4, Height: 4}},
	}
	grid := buildGrid([]Point{{0, 5}, {10, 5}}, []PlacedRectangularNode{node})
	mg := buildMaskedGrid(grid, []PlacedRectangularNode{node}, nil)

	gp, ok := grid.pointToGridPoint(node.Center)
	if !ok {
		t.Fatal("expected the node's center to coincide with a grid line")
	}
	if mg.PointMask[gp] {
		t.Error("expected the node's center grid point to be masked")
	}
}

func TestBuildMaskedGridPreservesUnremovablePoints(t *testing.T) {
	node := PlacedRectangularNode{
		Center: Point{X: 5, Y: 5},
		Node:   RectangularNode{Size: Size{Width: 4, Height: 4}},
	}
	grid := buildGrid([]Point{{5, 5}, {10, 10}}, []PlacedRectangularNode{node})
	gp, ok := grid.pointToGridPoint(node.Center)
	if !ok {
		t.Fatal("expected the node's center to coincide with a grid line")
	}

	unremovable := map[GridPoint]struct{}{gp: {}}
	mg := buildMaskedGrid(grid, []PlacedRectangularNode{node}, unremovable)
	if !mg.PointMask[gp] {
		t.Error("expected the unremovable endpoint to remain unmasked")
	}
}

func TestNodeGridBoundsCollapsesToNearestInsideLine(t *testing.T) {
	// tl=(3,3)/br=(7,7) against xLines=[0,2,5,8,10], yLines=[0,5,10]: neither
	// edge coincides with a grid line, so both axes must collapse to the
	// single line strictly inside the node (x=5 on both axes, y=5 on both).
	grid := newGrid([]int{0, 2, 5, 8, 10}, []int{0, 5, 10})

	minGX, maxGX, minGY, maxGY := nodeGridBounds(grid, Point{X: 3, Y: 3}, Point{X: 7, Y: 7})
	if minGX != 2 || maxGX != 2 {
		t.Errorf("x bounds = [%d,%d], want [2,2] (collapsed onto line x=5)", minGX, maxGX)
	}
	if minGY != 1 || maxGY != 1 {
		t.Errorf("y bounds = [%d,%d], want [1,1] (collapsed onto line y=5)", minGY, maxGY)
	}
}

func TestBuildMaskedGridMasksOnlyWithinNodeFootprint(t *testing.T) {
	// The node's footprint (tl=(3,3)/br=(7,7)) only ever touches grid line
	// x=5/y=5 on this grid, so the unmasked far corner (x=8,y=10) must stay
	// usable: a masking bug that over-extends to the next line out would
	// mask it too.
	grid := newGrid([]int{0, 2, 5, 8, 10}, []int{0, 5, 10})
	node := PlacedRectangularNode{
		Center: Point{X: 5, Y: 5},
		Node:   RectangularNode{Size: Size{Width: 4, Height: 4}},
	}
	mg := buildMaskedGrid(grid, []PlacedRectangularNode{node}, nil)

	far := grid.gridCoordsToGridPoint(3, 2) // (x=8, y=10)
	if !mg.PointMask[far] {
		t.Error("expected the grid point beyond the node's footprint to remain unmasked")
	}
}

func TestFillNeighborsNeverProducesDiagonals(t *testing.T) {
	grid := buildGrid([]Point{{0, 0}, {10, 10}}, nil)
	mg := buildMaskedGrid(grid, nil, nil)

	mid := grid.gridCoordsToGridPoint(grid.Width/2, grid.Height/2)
	for _, orient := range [2]Orientation{Horizontal, Vertical} {
		for _, n := range mg.fillNeighbors(mid, orient, nil) {
			if n.Point == mid {
				continue
			}
			gx, gy := grid.gridPointToGridCoords(mid)
			nx, ny := grid.gridPointToGridCoords(n.Point)
			dx, dy := abs(nx-gx), abs(ny-gy)
			if dx+dy != 1 {
				t.Errorf("neighbor %v of %v is not a unit orthogonal step (dx=%d, dy=%d)", n.Point, mid, dx, dy)
			}
		}
	}
}
