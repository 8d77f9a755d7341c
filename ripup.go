package gridrouter

import (
	"math/rand"
	"sort"
)

// startEndGridPoints collects the set of grid points touched by any
// request's start or end, used to keep those points out of the mask even
// when they sit inside a node's interior or halo. See §4.7.
func startEndGridPoints(grid Grid, requests []RouteRequest) map[GridPoint]struct{} {
	out := make(map[GridPoint]struct{})
	for _, r := range requests {
		if gp, ok := grid.pointToGridPoint(r.Start.Point()); ok {
			out[gp] = struct{}{}
		}
		if gp, ok := grid.pointToGridPoint(r.End.Point()); ok {
			out[gp] = struct{}{}
		}
	}
	return out
}

// edgeDifficulty scores a request by how hard it looks to route: longer
// spans and edges whose bounding box overlaps more obstacle area are
// harder. When the bounding box degenerates to zero area (start and end
// share an x or y coordinate) the obstacle term is dropped rather than
// divided by zero.
func edgeDifficulty(start, end DirectedPoint, nodes []PlacedRectangularNode) int {
	sp, ep := start.Point(), end.Point()

	span := abs(sp.X-ep.X) + abs(sp.Y-ep.Y)
	minX, maxX := minInt(sp.X, ep.X), maxInt(sp.X, ep.X)
	minY, maxY := minInt(sp.Y, ep.Y), maxInt(sp.Y, ep.Y)

	bboxArea := (maxX - minX) * (maxY - minY)
	if bboxArea == 0 {
		return -span
	}

	obstacleArea := 0
	for _, node := range nodes {
		tl, br := node.TopLeft(), node.BottomRight()
		if tl.X <= maxX && br.X >= minX && tl.Y <= maxY && br.Y >= minY {
			dx := minInt(br.X, maxX) - maxInt(tl.X, minX)
			if dx < 0 {
				dx = 0
			}
			dy := minInt(br.Y, maxY) - maxInt(tl.Y, minY)
			if dy < 0 {
				dy = 0
			}
			obstacleArea += dx * dy
		}
	}

	obstacleTerm := roundHalfAwayFromZero(200.0 * float64(obstacleArea) / float64(bboxArea))
	return -(span + obstacleTerm)
}

func roundHalfAwayFromZero(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}

// orderEdgesByDifficulty sorts requests by edgeDifficulty plus a small
// reproducible noise term, so similar-difficulty edges don't always route
// in the same relative order across iterations. Requests are first put in
// a canonical endpoint order, so the noise each request draws does not
// depend on the order the caller supplied them in.
func orderEdgesByDifficulty(requests []RouteRequest, nodes []PlacedRectangularNode, rng *rand.Rand) []RouteRequest {
	type scored struct {
		score int
		req   RouteRequest
	}
	key := func(r RouteRequest) [6]int {
		return [6]int{r.Start.X, r.Start.Y, int(r.Start.Direction), r.End.X, r.End.Y, int(r.End.Direction)}
	}
	canonical := append([]RouteRequest(nil), requests...)
	sort.SliceStable(canonical, func(i, j int) bool {
		a, b := key(canonical[i]), key(canonical[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	out := make([]scored, len(canonical))
	for i, r := range canonical {
		noise := rng.Intn(11)
		out[i] = scored{score: edgeDifficulty(r.Start, r.End, nodes) + noise, req: r}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })

	result := make([]RouteRequest, len(out))
	for i, s := range out {
		result[i] = s.req
	}
	return result
}

// computeOverflow tallies how far usage exceeds capacity across segments
// and corners, returning (total, edge, corner).
func computeOverflow(rawUsage, rawCornerUsage []int, capacity, cornerCapacity int) (total, edge, corner int) {
	for _, usage := range rawUsage {
		if usage > capacity {
			over := usage - capacity
			total += over
			edge += over
		}
	}
	for _, usage := range rawCornerUsage {
		if usage > cornerCapacity {
			over := usage - cornerCapacity
			total += over
			corner += over
		}
	}
	return
}

func updateEdgeHistoryCost(rawUsage []int, rawHistoryCost []float64, capacity int) {
	for i, usage := range rawUsage {
		if usage > capacity {
			rawHistoryCost[i] += float64(usage - capacity)
		}
	}
}

func updateCornerHistoryCost(rawCornerUsage []int, rawCornerHistory []float64, cornerCapacity int) {
	for i, usage := range rawCornerUsage {
		if usage > cornerCapacity {
			rawCornerHistory[i] += float64(usage - cornerCapacity)
		}
	}
}

func edgePathHasOverflow(path PathWithEndpoints, raw RawArea, rawUsage, rawCornerUsage []int, capacity, cornerCapacity int) bool {
	for _, segIdx := range path.Path.segments(raw) {
		if rawUsage[segIdx] > capacity {
			return true
		}
	}
	for _, cornerIdx := range path.Path.corners(raw) {
		if rawCornerUsage[cornerIdx] > cornerCapacity {
			return true
		}
	}
	return false
}

// pathKey identifies a routed request by its raw start/end points, the
// same key result_paths is indexed by.
type pathKey struct {
	Start, End RawPoint
}

func requestPathKey(raw RawArea, r RouteRequest) (pathKey, bool) {
	startRaw, ok := raw.pointToRawPoint(r.Start.Point())
	if !ok {
		return pathKey{}, false
	}
	endRaw, ok := raw.pointToRawPoint(r.End.Point())
	if !ok {
		return pathKey{}, false
	}
	return pathKey{startRaw, endRaw}, true
}

// selectEdgesToRip returns the subset of sortedRequests whose currently
// stored path overflows capacity somewhere.
func selectEdgesToRip(
	sortedRequests []RouteRequest,
	resultPaths map[pathKey]PathWithEndpoints,
	raw RawArea,
	rawUsage, rawCornerUsage []int,
	capacity, cornerCapacity int,
) []RouteRequest {
	var toRip []RouteRequest
	for _, r := range sortedRequests {
		key, ok := requestPathKey(raw, r)
		if !ok {
			continue
		}
		routedPath, ok := resultPaths[key]
		if !ok {
			continue
		}
		if edgePathHasOverflow(routedPath, raw, rawUsage, rawCornerUsage, capacity, cornerCapacity) {
			toRip = append(toRip, r)
		}
	}
	return toRip
}

// ripUpAndQueue undoes the usage footprint of every ripped request's
// stored path and returns the list of requests to route again next
// iteration.
func ripUpAndQueue(
	toRip []RouteRequest,
	resultPaths map[pathKey]PathWithEndpoints,
	raw RawArea,
	rawUsage, rawCornerUsage []int,
) []RouteRequest {
	opEdges := make([]RouteRequest, 0, len(toRip))
	for _, r := range toRip {
		key, ok := requestPathKey(raw, r)
		if ok {
			if routedPath, ok := resultPaths[key]; ok {
				for _, segIdx := range routedPath.Path.segments(raw) {
					rawUsage[segIdx]--
				}
				for _, cornerIdx := range routedPath.Path.corners(raw) {
					rawCornerUsage[cornerIdx]--
				}
			}
		}
		opEdges = append(opEdges, r)
	}
	return opEdges
}
