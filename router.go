package gridrouter

import (
	"context"
	"fmt"
	"os"

	"cdr.dev/slog"
	"go.uber.org/multierr"
)

// RoutingConfig is per-request routing configuration. Neighborhood is
// accepted and stored but never consulted: A* always expands orthogonal
// neighbors, Moore is a carry-over knob reserved for future diagonal
// routing.
type RoutingConfig struct {
	Neighborhood Neighborhood
}

// RouteRequest is one edge to route: the opaque handles of the
// connecting objects (for existing_edges bookkeeping) plus its directed
// endpoints and per-request config.
type RouteRequest struct {
	U, V       int
	Start, End DirectedPoint
	Config     RoutingConfig
}

// RouterOptions configures an EdgeRouter. A zero-valued RouterOptions is
// usable: every zero-valued constant is replaced by the congestion
// model's default.
type RouterOptions struct {
	Logger slog.Logger

	MaxIterations  int
	Capacity       int
	CornerCapacity int
	Lambda         float64
	Mu             float64
	BaseCost       float64
	CornerLambda   float64
}

func (o RouterOptions) withDefaults() RouterOptions {
	if o.MaxIterations == 0 {
		o.MaxIterations = 10
	}
	if o.Capacity == 0 {
		o.Capacity = 1
	}
	if o.CornerCapacity == 0 {
		o.CornerCapacity = 1
	}
	if o.Lambda == 0 {
		o.Lambda = 2.0
	}
	if o.Mu == 0 {
		o.Mu = 0.5
	}
	if o.BaseCost == 0 {
		o.BaseCost = 1.0
	}
	if o.CornerLambda == 0 {
		o.CornerLambda = 5.0
	}
	return o
}

type edgeKey struct{ U, V int }

// EdgeRouter holds placed nodes and existing edges and routes batches of
// requests against them with a negotiated-congestion rip-up-and-reroute
// loop.
type EdgeRouter struct {
	opts RouterOptions

	objectMap     *ObjectIndex[any]
	placedNodes   map[int]PlacedRectangularNode
	existingEdges map[edgeKey][]Point
	nodeTree      *spatialIndex
}

// NewEdgeRouter constructs an EdgeRouter with the given options, applying
// the congestion model's defaults to any zero-valued constant.
func NewEdgeRouter(opts RouterOptions) *EdgeRouter {
	return &EdgeRouter{
		opts:          opts.withDefaults(),
		objectMap:     NewObjectIndex[any](),
		placedNodes:   make(map[int]PlacedRectangularNode),
		existingEdges: make(map[edgeKey][]Point),
		nodeTree:      newSpatialIndex(),
	}
}

// AddNode registers a placed node under an opaque handle. Inserting the
// same handle twice overwrites its placement and reindexes it.
func (r *EdgeRouter) AddNode(handle any, placed PlacedRectangularNode) {
	idx, _ := r.objectMap.GetOrInsert(handle)
	if old, ok := r.placedNodes[idx]; ok {
		r.nodeTree.Delete(idx, old)
	}
	r.placedNodes[idx] = placed
	r.nodeTree.Insert(idx, placed)
}

// RemoveNode drops a previously added node. Removing an unknown handle is
// a no-op.
func (r *EdgeRouter) RemoveNode(handle any) {
	idx, ok := r.objectMap.Find(handle)
	if !ok {
		return
	}
	placed, ok := r.placedNodes[idx]
	if !ok {
		return
	}
	delete(r.placedNodes, idx)
	r.nodeTree.Delete(idx, placed)
}

// AddEdge records an existing routed polyline between two handles, for
// bookkeeping; RouteEdges never reads it back.
func (r *EdgeRouter) AddEdge(u, v any, polyline []Point) {
	ui, _ := r.objectMap.GetOrInsert(u)
	vi, _ := r.objectMap.GetOrInsert(v)
	r.existingEdges[edgeKey{ui, vi}] = polyline
}

// RemoveEdge drops a recorded existing edge. Removing an unknown pair is
// a no-op.
func (r *EdgeRouter) RemoveEdge(u, v any) {
	ui, ok1 := r.objectMap.Find(u)
	vi, ok2 := r.objectMap.Find(v)
	if !ok1 || !ok2 {
		return
	}
	delete(r.existingEdges, edgeKey{ui, vi})
}

func (r *EdgeRouter) placedNodesSlice() []PlacedRectangularNode {
	out := make([]PlacedRectangularNode, 0, len(r.placedNodes))
	for _, n := range r.placedNodes {
		out = append(out, n)
	}
	return out
}

// RouteEdges routes a batch of requests simultaneously, running the
// negotiated-congestion rip-up-and-reroute loop until no segment or
// corner exceeds capacity or MaxIterations is reached, and returns one
// directed-point path per input request in input order (an empty slice
// for any request whose endpoints don't resolve onto the built grid).
func (r *EdgeRouter) RouteEdges(requests []RouteRequest) ([][]DirectedPoint, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	ctx := context.Background()
	tracePath, traceEnabled := os.LookupEnv("NETEXT_ROUTING_TRACE_JSON")

	nodes := r.placedNodesSlice()

	endpoints := make([]Point, 0, len(requests)*2)
	for _, req := range requests {
		endpoints = append(endpoints, req.Start.Point(), req.End.Point())
	}
	grid := buildGrid(endpoints, nodes)
	raw := grid.rawArea()

	unremovable := startEndGridPoints(grid, requests)
	mg := buildMaskedGrid(grid, nodes, unremovable)

	seed := routingSeed(requests, nodes)
	rng := rngFromSeed(seed)

	r.opts.Logger.Debug(ctx, "built routing grid",
		slog.F("width", grid.Width), slog.F("height", grid.Height), slog.F("requests", len(requests)))

	var tracer *traceBuilder
	if traceEnabled {
		tracer = newTraceBuilder(grid, mg, r.objectMap, r.placedNodes)
	}

	numSegments := raw.NumSegments
	rawUsage := make([]int, numSegments)
	rawCost := make([]float64, numSegments)
	rawHistoryCost := make([]float64, numSegments)
	rawCornerUsage := make([]int, raw.Size)
	rawCornerHistory := make([]float64, raw.Size)

	prefixLen := raw.Width * raw.Height
	rawCostPrefixX := make([]float64, prefixLen)
	rawCostPrefixY := make([]float64, prefixLen)
	rawHistoryPrefixX := make([]float64, prefixLen)
	rawHistoryPrefixY := make([]float64, prefixLen)

	resultPaths := make(map[pathKey]PathWithEndpoints)

	params := singleEdgeParams{
		BaseCost:       r.opts.BaseCost,
		Mu:             r.opts.Mu,
		CornerLambda:   r.opts.CornerLambda,
		CornerCapacity: r.opts.CornerCapacity,
	}

	opEdges := requests
	var totalOverflow, edgeOverflow, cornerOverflow int

	for iteration := 0; iteration < r.opts.MaxIterations; iteration++ {
		for i := range rawCost {
			overflow := 0
			if rawUsage[i] > r.opts.Capacity {
				overflow = rawUsage[i] - r.opts.Capacity
			}
			rawCost[i] = 1.0 + r.opts.Lambda*float64(overflow)
		}

		edgePrefixSums(raw, rawCost, rawCostPrefixX, rawCostPrefixY)
		edgePrefixSums(raw, rawHistoryCost, rawHistoryPrefixX, rawHistoryPrefixY)

		sortedRequests := orderEdgesByDifficulty(opEdges, nodes, rng)

		prefix := costPrefixSums{
			CostPrefixX: rawCostPrefixX, CostPrefixY: rawCostPrefixY,
			HistoryPrefixX: rawHistoryPrefixX, HistoryPrefixY: rawHistoryPrefixY,
		}

		var iterationTrace *traceIteration
		if tracer != nil {
			iterationTrace = tracer.beginIteration(iteration)
		}

		for _, req := range sortedRequests {
			res, err := routeSingleEdge(grid, raw, mg, req.Start, req.End, rng, prefix, rawUsage, rawCornerUsage, rawCornerHistory, params)
			if err != nil {
				continue
			}
			resultPaths[pathKey{res.StartRaw, res.EndRaw}] = res.Path
			if iterationTrace != nil {
				iterationTrace.recordRouted(res)
			}
		}

		totalOverflow, edgeOverflow, cornerOverflow = computeOverflow(rawUsage, rawCornerUsage, r.opts.Capacity, r.opts.CornerCapacity)
		finished := totalOverflow == 0

		if !finished {
			updateEdgeHistoryCost(rawUsage, rawHistoryCost, r.opts.Capacity)
			updateCornerHistoryCost(rawCornerUsage, rawCornerHistory, r.opts.CornerCapacity)

			toRip := selectEdgesToRip(sortedRequests, resultPaths, raw, rawUsage, rawCornerUsage, r.opts.Capacity, r.opts.CornerCapacity)
			opEdges = ripUpAndQueue(toRip, resultPaths, raw, rawUsage, rawCornerUsage)
			if iterationTrace != nil {
				iterationTrace.recordRippedUp(toRip)
			}
		} else {
			opEdges = nil
		}

		if iterationTrace != nil {
			iterationTrace.finish(resultPaths, rawUsage, rawCornerUsage, totalOverflow, edgeOverflow, cornerOverflow)
		}

		r.opts.Logger.Debug(ctx, "routing iteration complete",
			slog.F("iteration", iteration), slog.F("overflow", totalOverflow), slog.F("requeued", len(opEdges)))

		if finished {
			break
		}
	}

	directedPaths := make([][]DirectedPoint, len(requests))
	for i, req := range requests {
		key, ok := requestPathKey(raw, req)
		if !ok {
			continue
		}
		path, ok := resultPaths[key]
		if !ok {
			continue
		}
		directedPaths[i] = path.toDirectedPoints()
	}

	var err error
	if tracer != nil {
		err = multierr.Append(err, writeTraceFile(tracePath, tracer.build(raw)))
	}

	return directedPaths, err
}

// RouteEdge routes a single request and returns its resolved path.
func (r *EdgeRouter) RouteEdge(u, v any, start, end DirectedPoint, cfg RoutingConfig) ([]DirectedPoint, error) {
	ui, _ := r.objectMap.GetOrInsert(u)
	vi, _ := r.objectMap.GetOrInsert(v)
	paths, err := r.RouteEdges([]RouteRequest{{U: ui, V: vi, Start: start, End: end, Config: cfg}})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("gridrouter: no path resolved for request")
	}
	return paths[0], nil
}
