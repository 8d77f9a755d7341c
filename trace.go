package gridrouter

import (
	"encoding/json"
	"fmt"
	"os"
)

// TracePoint is a raw (x, y) pair as it appears in a JSON trace.
type TracePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TraceNode describes one placed node's geometry for a trace's layout
// section.
type TraceNode struct {
	ID          int        `json:"id"`
	Center      TracePoint `json:"center"`
	Size        TraceSize  `json:"size"`
	TopLeft     TracePoint `json:"top_left"`
	BottomRight TracePoint `json:"bottom_right"`
}

// TraceSize is a node's width/height for a trace's layout section.
type TraceSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TraceGridPoint describes one grid point's masking state for a trace's
// layout section. MaskedAdjacent is true when at least one segment
// touching the point is masked.
type TraceGridPoint struct {
	Index          int        `json:"index"`
	Raw            TracePoint `json:"raw"`
	Blocked        bool       `json:"blocked"`
	MaskedAdjacent bool       `json:"masked_adjacent"`
}

// TraceRawArea mirrors the raw coordinate bounding box a trace was
// computed against.
type TraceRawArea struct {
	TopLeft     TracePoint `json:"top_left"`
	BottomRight TracePoint `json:"bottom_right"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
}

// TraceLayout is the static, iteration-independent part of a trace.
type TraceLayout struct {
	Nodes      []TraceNode      `json:"nodes"`
	GridPoints []TraceGridPoint `json:"grid_points"`
	RawArea    TraceRawArea     `json:"raw_area"`
}

// TraceRoutedEdge records one request's resolved endpoints and path for
// a single iteration.
type TraceRoutedEdge struct {
	Start TracePoint   `json:"start"`
	End   TracePoint   `json:"end"`
	Path  []TracePoint `json:"path"`
}

// TraceOverflow is the segment/corner overflow tally for one iteration.
type TraceOverflow struct {
	Total   int `json:"total"`
	Edges   int `json:"edges"`
	Corners int `json:"corners"`
}

// TraceIteration records one pass of the rip-up-and-reroute loop.
type TraceIteration struct {
	Iteration      int               `json:"iteration"`
	RoutedEdges    []TraceRoutedEdge `json:"routed_edges"`
	AllPaths       []TraceRoutedEdge `json:"all_paths"`
	RippedUpNext   []TraceRoutedEdge `json:"ripped_up_next"`
	RawUsage       []int             `json:"raw_usage"`
	RawCornerUsage []int             `json:"raw_corner_usage"`
	Overflow       TraceOverflow     `json:"overflow"`
}

// TraceDocument is the full JSON document written to
// NETEXT_ROUTING_TRACE_JSON.
type TraceDocument struct {
	Layout     TraceLayout      `json:"layout"`
	Iterations []TraceIteration `json:"iterations"`
}

func tracePointOf(p Point) TracePoint { return TracePoint{X: p.X, Y: p.Y} }

// traceBuilder accumulates a TraceDocument across a RouteEdges call.
type traceBuilder struct {
	layout     TraceLayout
	iterations []TraceIteration
}

func isGridAdjacent(ax, ay, bx, by int) bool {
	return (abs(ax-bx) == 1 && ay == by) || (abs(ay-by) == 1 && ax == bx)
}

// BuildTraceLayout snapshots node geometry and grid-point masking state
// into the static layout section of a trace.
func BuildTraceLayout(grid Grid, mg MaskedGrid, objectMap *ObjectIndex[any], placedNodes map[int]PlacedRectangularNode) TraceLayout {
	nodes := make([]TraceNode, 0, len(placedNodes))
	for handle, node := range placedNodes {
		tl, br := node.TopLeft(), node.BottomRight()
		nodes = append(nodes, TraceNode{
			ID:          handle,
			Center:      tracePointOf(node.Center),
			Size:        TraceSize{Width: node.Node.Size.Width, Height: node.Node.Size.Height},
			TopLeft:     tracePointOf(tl),
			BottomRight: tracePointOf(br),
		})
	}

	gridPoints := make([]TraceGridPoint, grid.Size)
	for i := range gridPoints {
		gp := GridPoint(i)
		rawPt := tracePointOf(grid.gridPointToPoint(gp))
		blocked := !mg.PointMask[gp]

		maskedAdjacent := false
		gx, gy := grid.gridPointToGridCoords(gp)
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := gx+d[0], gy+d[1]
			if nx < 0 || ny < 0 || nx >= grid.Width || ny >= grid.Height {
				continue
			}
			if !mg.SegmentMask[grid.gridCoordsToSegmentIndex(gx, gy, nx, ny)] {
				maskedAdjacent = true
			}
		}

		gridPoints[i] = TraceGridPoint{Index: i, Raw: rawPt, Blocked: blocked, MaskedAdjacent: maskedAdjacent}
	}

	raw := grid.rawArea()
	return TraceLayout{
		Nodes:      nodes,
		GridPoints: gridPoints,
		RawArea: TraceRawArea{
			TopLeft:     tracePointOf(raw.TopLeft),
			BottomRight: tracePointOf(raw.BottomRight),
			Width:       raw.Width,
			Height:      raw.Height,
		},
	}
}

func newTraceBuilder(grid Grid, mg MaskedGrid, objectMap *ObjectIndex[any], placedNodes map[int]PlacedRectangularNode) *traceBuilder {
	return &traceBuilder{layout: BuildTraceLayout(grid, mg, objectMap, placedNodes)}
}

// traceIteration accumulates one iteration's worth of trace data before
// it is committed to the builder via finish.
type traceIteration struct {
	builder *traceBuilder
	index   int

	routedEdges   []TraceRoutedEdge
	pendingRipped []RouteRequest
}

func (tb *traceBuilder) beginIteration(index int) *traceIteration {
	return &traceIteration{builder: tb, index: index}
}

func pathToTracePoints(path PathWithEndpoints) []TracePoint {
	points := make([]TracePoint, len(path.Path.Points))
	for i, p := range path.Path.Points {
		points[i] = tracePointOf(p)
	}
	return points
}

func (ti *traceIteration) recordRouted(res routeSingleEdgeResult) {
	ti.routedEdges = append(ti.routedEdges, TraceRoutedEdge{
		Start: tracePointOf(res.Path.Start.Point()),
		End:   tracePointOf(res.Path.End.Point()),
		Path:  pathToTracePoints(res.Path),
	})
}

func (ti *traceIteration) recordRippedUp(toRip []RouteRequest) {
	ti.pendingRipped = toRip
}

// finish resolves the ripped-up requests' previously stored paths and
// commits the completed TraceIteration onto the owning builder.
func (ti *traceIteration) finish(resultPaths map[pathKey]PathWithEndpoints, rawUsage, rawCornerUsage []int, total, edge, corner int) {
	allPaths := make([]TraceRoutedEdge, 0, len(resultPaths))
	for _, p := range resultPaths {
		allPaths = append(allPaths, TraceRoutedEdge{
			Start: tracePointOf(p.Start.Point()),
			End:   tracePointOf(p.End.Point()),
			Path:  pathToTracePoints(p),
		})
	}

	rippedUp := make([]TraceRoutedEdge, 0, len(ti.pendingRipped))
	for _, r := range ti.pendingRipped {
		rippedUp = append(rippedUp, TraceRoutedEdge{
			Start: tracePointOf(r.Start.Point()),
			End:   tracePointOf(r.End.Point()),
		})
	}

	ti.builder.iterations = append(ti.builder.iterations, TraceIteration{
		Iteration:      ti.index,
		RoutedEdges:    ti.routedEdges,
		AllPaths:       allPaths,
		RippedUpNext:   rippedUp,
		RawUsage:       append([]int(nil), rawUsage...),
		RawCornerUsage: append([]int(nil), rawCornerUsage...),
		Overflow:       TraceOverflow{Total: total, Edges: edge, Corners: corner},
	})
}

func (tb *traceBuilder) build(raw RawArea) TraceDocument {
	return TraceDocument{Layout: tb.layout, Iterations: tb.iterations}
}

func writeTraceFile(path string, doc TraceDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("gridrouter: marshaling routing trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gridrouter: writing routing trace to %s: %w", path, err)
	}
	return nil
}
