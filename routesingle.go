package gridrouter

import (
	"fmt"
	"math/rand"
)

// costPrefixSums bundles the four prefix-sum buffers route_single_edge
// needs to evaluate a step's present and historical cost in O(1).
type costPrefixSums struct {
	CostPrefixX, CostPrefixY       []float64
	HistoryPrefixX, HistoryPrefixY []float64
}

// singleEdgeParams carries the scalar congestion-model constants shared
// across an EdgeRouter's route_edges call. See §4.6/§4.7 for the defaults.
type singleEdgeParams struct {
	BaseCost       float64
	Mu             float64
	CornerLambda   float64
	CornerCapacity int
}

func segmentCostFromPrefixSums(grid Grid, prefixX, prefixY []float64, fromGP, toGP GridPoint, fromPt, toPt Point) float64 {
	if fromPt == toPt {
		return 0
	}
	if fromPt.X == toPt.X {
		toUpper := toPt.Y > fromPt.Y
		var upperRP, lowerRP RawPoint
		if toUpper {
			upperRP, lowerRP = grid.gridPointToRawPoint(toGP), grid.gridPointToRawPoint(fromGP)
		} else {
			upperRP, lowerRP = grid.gridPointToRawPoint(fromGP), grid.gridPointToRawPoint(toGP)
		}
		return prefixY[upperRP] - prefixY[lowerRP]
	}
	toLeft := toPt.X < fromPt.X
	var leftRP, rightRP RawPoint
	if toLeft {
		leftRP, rightRP = grid.gridPointToRawPoint(toGP), grid.gridPointToRawPoint(fromGP)
	} else {
		leftRP, rightRP = grid.gridPointToRawPoint(fromGP), grid.gridPointToRawPoint(toGP)
	}
	return prefixX[rightRP] - prefixX[leftRP]
}

// routeSingleEdgeResult is what routeSingleEdge returns for one request.
type routeSingleEdgeResult struct {
	StartRaw, EndRaw RawPoint
	Path             PathWithEndpoints
}

// routeSingleEdge wraps A* with the congestion-aware cost function of
// §4.6, falling back to an L-shape when A* cannot find a path. It mutates
// rawUsage/rawCornerUsage in place to record the chosen path's footprint.
func routeSingleEdge(
	grid Grid,
	raw RawArea,
	mg MaskedGrid,
	start, end DirectedPoint,
	rng *rand.Rand,
	prefix costPrefixSums,
	rawUsage []int,
	rawCornerUsage []int,
	rawCornerHistory []float64,
	params singleEdgeParams,
) (routeSingleEdgeResult, error) {
	startRaw, ok := raw.pointToRawPoint(start.Point())
	if !ok {
		return routeSingleEdgeResult{}, ErrEndpointOutOfBounds
	}
	endRaw, ok := raw.pointToRawPoint(end.Point())
	if !ok {
		return routeSingleEdgeResult{}, ErrEndpointOutOfBounds
	}

	startGP, ok := grid.pointToGridPoint(start.Point())
	if !ok {
		return routeSingleEdgeResult{}, fmt.Errorf("%w: %v", ErrEndpointNotOnGrid, start.Point())
	}
	endGP, ok := grid.pointToGridPoint(end.Point())
	if !ok {
		return routeSingleEdgeResult{}, fmt.Errorf("%w: %v", ErrEndpointNotOnGrid, end.Point())
	}

	startOrient := start.Direction.ToOrientation()
	endOrient := end.Direction.ToOrientation()

	costFn := func(fromGP, toGP GridPoint, fromOrient, toOrient Orientation) int {
		fromPt := grid.gridPointToPoint(fromGP)
		toPt := grid.gridPointToPoint(toGP)

		turnCost := 0
		if fromOrient != toOrient {
			turnCost = 1
		}

		currentCost := segmentCostFromPrefixSums(grid, prefix.CostPrefixX, prefix.CostPrefixY, fromGP, toGP, fromPt, toPt)
		historyCost := segmentCostFromPrefixSums(grid, prefix.HistoryPrefixX, prefix.HistoryPrefixY, fromGP, toGP, fromPt, toPt)

		cornerPenalty := 0.0
		if fromOrient != toOrient {
			cornerRP, _ := raw.pointToRawPoint(fromPt)
			usage := rawCornerUsage[cornerRP]
			overflow := 0
			if usage > params.CornerCapacity {
				overflow = usage - params.CornerCapacity
			}
			history := rawCornerHistory[cornerRP]
			reusePenalty := 0.0
			if usage > 0 {
				reusePenalty = params.BaseCost
			}
			cornerPenalty = reusePenalty + params.CornerLambda*float64(overflow) + params.Mu*history
		}

		return int(float64(turnCost) + currentCost + params.Mu*historyCost + cornerPenalty)
	}

	gridPath, err := routeVisibilityAStar(mg, startGP, endGP, startOrient, endOrient, rng, costFn)
	if err != nil {
		gridPath = fallbackLShape(grid, mg, startGP, endGP, endOrient)
	}

	points := make([]Point, len(gridPath))
	for i, st := range gridPath {
		gx, gy := grid.gridPointToGridCoords(st.Point)
		points[i] = Point{grid.XLines[gx], grid.YLines[gy]}
	}

	pathWithEndpoints := PathWithEndpoints{Path: Path{Points: points}, Start: start, End: end}

	for _, segIdx := range pathWithEndpoints.Path.segments(raw) {
		rawUsage[segIdx]++
	}
	for _, cornerIdx := range pathWithEndpoints.Path.corners(raw) {
		rawCornerUsage[cornerIdx]++
	}

	return routeSingleEdgeResult{StartRaw: startRaw, EndRaw: endRaw, Path: pathWithEndpoints}, nil
}

// fallbackLShape synthesizes a two-leg Manhattan path when the visibility
// graph is disconnected. Prefers horizontal-first; falls back to
// vertical-first only if horizontal is blocked and vertical is clear. See
// §4.6 — the fallback may still return a masked path; that is a deliberate
// trade-off preserved from the source behavior.
func fallbackLShape(grid Grid, mg MaskedGrid, startGP, endGP GridPoint, endOrient Orientation) []gridState {
	sx, sy := grid.gridPointToGridCoords(startGP)
	ex, ey := grid.gridPointToGridCoords(endGP)

	build := func(midX, midY int, first, second Orientation) []gridState {
		out := []gridState{{startGP, first}}
		mid := grid.gridCoordsToGridPoint(midX, midY)
		if mid != startGP {
			out = append(out, gridState{mid, second})
		}
		if endGP != startGP {
			out = append(out, gridState{endGP, endOrient})
		}
		return out
	}

	segmentClear := func(ax, ay, bx, by int) bool {
		if ax == bx && ay == by {
			return true
		}
		if ax != bx && ay != by {
			return false
		}
		if ax != bx {
			step := 1
			if bx < ax {
				step = -1
			}
			for ax != bx {
				nextX := ax + step
				seg := grid.gridCoordsToSegmentIndex(ax, ay, nextX, ay)
				if !mg.SegmentMask[seg] {
					return false
				}
				ax = nextX
			}
		} else {
			step := 1
			if by < ay {
				step = -1
			}
			for ay != by {
				nextY := ay + step
				seg := grid.gridCoordsToSegmentIndex(ax, ay, ax, nextY)
				if !mg.SegmentMask[seg] {
					return false
				}
				ay = nextY
			}
		}
		return true
	}

	horizontalThenVerticalOK := segmentClear(sx, sy, ex, sy) && segmentClear(ex, sy, ex, ey)
	verticalThenHorizontalOK := segmentClear(sx, sy, sx, ey) && segmentClear(sx, ey, ex, ey)

	if horizontalThenVerticalOK || !verticalThenHorizontalOK {
		return build(ex, sy, Horizontal, Vertical)
	}
	return build(sx, ey, Vertical, Horizontal)
}
