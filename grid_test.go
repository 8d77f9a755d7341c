package gridrouter

import "testing"

func TestBuildLinesFromCoordsInsertsGapLines(t *testing.T) {
	lines := buildLinesFromCoords([]int{0, 10})
	if len(lines) < 2 {
		t.Fatalf("expected at least the two original coordinates, got %v", lines)
	}
	if lines[0] != 0 || lines[len(lines)-1] != 10 {
		t.Errorf("endpoints not preserved: %v", lines)
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] <= lines[i-1] {
			t.Fatalf("lines not strictly increasing: %v", lines)
		}
	}
}

func TestBuildLinesFromCoordsDedupsAndSorts(t *testing.T) {
	lines := buildLinesFromCoords([]int{5, 1, 5, 3})
	// Unique sorted values are [1, 3, 5]; each gap of 2 gets its midpoint.
	want := []int{1, 2, 3, 4, 5}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("lines[%d] = %d, want %d", i, lines[i], w)
		}
	}
}

func TestGridPointRoundTrip(t *testing.T) {
	grid := buildGrid([]Point{{0, 0}, {10, 10}}, nil)
	for gy := 0; gy < grid.Height; gy++ {
		for gx := 0; gx < grid.Width; gx++ {
			gp := grid.gridCoordsToGridPoint(gx, gy)
			rx, ry := grid.gridPointToGridCoords(gp)
			if rx != gx || ry != gy {
				t.Errorf("round trip (%d,%d) -> %d -> (%d,%d)", gx, gy, gp, rx, ry)
			}
		}
	}
}

func TestPointToGridPointOnlyMatchesGridLines(t *testing.T) {
	grid := buildGrid([]Point{{0, 0}, {10, 10}}, nil)
	if _, ok := grid.pointToGridPoint(Point{X: grid.MinX, Y: grid.MinY}); !ok {
		t.Error("expected the grid's own minimum corner to resolve")
	}
	if _, ok := grid.pointToGridPoint(Point{X: grid.MinX - 1000, Y: grid.MinY}); ok {
		t.Error("expected a wildly out-of-bounds point to fail to resolve")
	}
}

func TestGridCoordsToSegmentIndexPanicsOnNonAdjacency(t *testing.T) {
	grid := buildGrid([]Point{{0, 0}, {10, 10}}, nil)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-adjacent grid coordinates")
		}
	}()
	grid.gridCoordsToSegmentIndex(0, 0, 2, 0)
}

func TestBuildGridPadsAroundNodes(t *testing.T) {
	nodes := []PlacedRectangularNode{
		{Center: Point{X: 50, Y: 50}, Node: RectangularNode{Size: Size{Width: 20, Height: 20}}},
	}
	grid := buildGrid([]Point{{0, 0}, {100, 100}}, nodes)
	if grid.MinX > 40-3 {
		t.Errorf("grid.MinX = %d, want <= %d (node left edge minus padding)", grid.MinX, 40-3)
	}
	if grid.MaxX < 60+3 {
		t.Errorf("grid.MaxX = %d, want >= %d (node right edge plus padding)", grid.MaxX, 60+3)
	}
}
