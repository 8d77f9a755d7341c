package gridrouter

import (
	"math/rand"
	"testing"
)

func TestRawAreaPointRoundTrip(t *testing.T) {
	area := newRawArea(Point{-2, -2}, Point{8, 8})
	for y := area.TopLeft.Y; y <= area.BottomRight.Y; y++ {
		for x := area.TopLeft.X; x <= area.BottomRight.X; x++ {
			p := Point{x, y}
			rp, ok := area.pointToRawPoint(p)
			if !ok {
				t.Fatalf("pointToRawPoint(%v) unexpectedly failed", p)
			}
			if got := area.rawIndexToPoint(rp); got != p {
				t.Errorf("round trip for %v produced %v", p, got)
			}
		}
	}
}

func TestSegmentIndexBetweenRejectsNonAdjacency(t *testing.T) {
	area := newRawArea(Point{0, 0}, Point{10, 10})
	if _, ok := area.segmentIndexBetween(Point{0, 0}, Point{2, 0}); ok {
		t.Error("expected segmentIndexBetween to reject a 2-unit jump")
	}
	if _, ok := area.segmentIndexBetween(Point{0, 0}, Point{1, 1}); ok {
		t.Error("expected segmentIndexBetween to reject a diagonal step")
	}
}

func TestEdgePrefixSumsMatchesDirectSum(t *testing.T) {
	area := newRawArea(Point{0, 0}, Point{6, 4})
	edges := make([]float64, area.NumSegments)
	rng := rand.New(rand.NewSource(7))
	for i := range edges {
		edges[i] = float64(rng.Intn(10))
	}

	px := make([]float64, area.Size)
	py := make([]float64, area.Size)
	edgePrefixSums(area, edges, px, py)

	// Row 1: sum of horizontal segments between columns 0 and 4.
	a, _ := area.pointToRawPoint(Point{0, 1})
	b, _ := area.pointToRawPoint(Point{4, 1})
	want := 0.0
	cur := Point{0, 1}
	for cur.X < 4 {
		idx, ok := area.segmentIndexBetween(cur, Point{cur.X + 1, cur.Y})
		if !ok {
			t.Fatal("expected adjacency")
		}
		want += edges[idx]
		cur.X++
	}
	if got := px[b] - px[a]; got != want {
		t.Errorf("prefix-sum range = %v, want %v", got, want)
	}
}
