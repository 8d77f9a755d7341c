package gridrouter

import (
	"math/rand"
	"testing"
)

func TestEdgeDifficultyPrefersShorterSpan(t *testing.T) {
	short := DirectedPoint{X: 0, Y: 0, Direction: Right}
	shortEnd := DirectedPoint{X: 2, Y: 0, Direction: Left}
	longEnd := DirectedPoint{X: 20, Y: 0, Direction: Left}

	shortScore := edgeDifficulty(short, shortEnd, nil)
	longScore := edgeDifficulty(short, longEnd, nil)

	if shortScore <= longScore {
		t.Errorf("expected the shorter span to score higher (less negative): short=%d long=%d", shortScore, longScore)
	}
}

func TestEdgeDifficultyHandlesZeroAreaBoundingBox(t *testing.T) {
	// Start and end share a y coordinate: the bounding box has zero height,
	// so the obstacle term must be dropped rather than divide by zero.
	start := DirectedPoint{X: 0, Y: 0, Direction: Right}
	end := DirectedPoint{X: 10, Y: 0, Direction: Left}
	nodes := []PlacedRectangularNode{
		{Center: Point{5, 0}, Node: RectangularNode{Size: Size{Width: 4, Height: 4}}},
	}

	score := edgeDifficulty(start, end, nodes)
	if score != -10 {
		t.Errorf("got %d, want -10 (span only, obstacle term dropped)", score)
	}
}

func TestOrderEdgesByDifficultyKeepsEveryRequest(t *testing.T) {
	requests := []RouteRequest{
		{U: 1, Start: DirectedPoint{X: 0, Y: 0, Direction: Right}, End: DirectedPoint{X: 5, Y: 0, Direction: Left}},
		{U: 2, Start: DirectedPoint{X: 0, Y: 1, Direction: Right}, End: DirectedPoint{X: 5, Y: 1, Direction: Left}},
	}
	rng := rand.New(rand.NewSource(42))
	ordered := orderEdgesByDifficulty(requests, nil, rng)
	if len(ordered) != len(requests) {
		t.Fatalf("got %d requests, want %d", len(ordered), len(requests))
	}
}

func TestComputeOverflowTalliesEdgesAndCorners(t *testing.T) {
	rawUsage := []int{0, 2, 3}
	rawCornerUsage := []int{0, 1, 2}
	total, edge, corner := computeOverflow(rawUsage, rawCornerUsage, 1, 1)

	wantEdge := (2 - 1) + (3 - 1)
	wantCorner := 2 - 1
	if edge != wantEdge {
		t.Errorf("edge overflow = %d, want %d", edge, wantEdge)
	}
	if corner != wantCorner {
		t.Errorf("corner overflow = %d, want %d", corner, wantCorner)
	}
	if total != wantEdge+wantCorner {
		t.Errorf("total overflow = %d, want %d", total, wantEdge+wantCorner)
	}
}

func TestUpdateEdgeHistoryCostOnlyAccumulatesOverflow(t *testing.T) {
	rawUsage := []int{0, 1, 3}
	history := make([]float64, 3)
	updateEdgeHistoryCost(rawUsage, history, 1)
	if history[0] != 0 || history[1] != 0 {
		t.Errorf("history changed for non-overflowing segments: %v", history)
	}
	if history[2] != 2 {
		t.Errorf("history[2] = %v, want 2 (usage 3 - capacity 1)", history[2])
	}
}
