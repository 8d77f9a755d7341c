package gridrouter

import (
	"container/heap"
	"math/rand"
)

// maxScore is a sentinel treated as "effectively infinite" cost, scaled
// down from the type's max to leave headroom for summation.
const maxScore = int(^uint(0)>>1) / 4

// gridState is an A* search state: a grid point plus the orientation the
// path currently extends along.
type gridState struct {
	Point       GridPoint
	Orientation Orientation
}

// CostFunc computes the cost of stepping from (fromPoint, fromOrient) to
// (toPoint, toOrient) on the masked grid. Implementations may return a
// value >= maxScore to mark the step impassable.
type CostFunc func(fromPoint, toPoint GridPoint, fromOrient, toOrient Orientation) int

// astarHeapItem is one entry of the open set, ordered by f-score with an
// insertion-order tiebreak. Modeled directly on the teacher's dijkstraPQ
// container/heap pattern.
type astarHeapItem struct {
	f       int
	counter uint64
	state   gridState
}

type astarHeap []astarHeapItem

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].counter < h[j].counter
}
func (h astarHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *astarHeap) Push(x interface{}) { *h = append(*h, x.(astarHeapItem)) }
func (h *astarHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// routeVisibilityAStar searches the masked visibility graph from
// (startPoint, startOrient) to (endPoint, endOrient), shuffling each
// state's neighbor candidates with rng before expansion so that ties are
// broken reproducibly-but-diversely across different inputs. See §4.5.
func routeVisibilityAStar(
	mg MaskedGrid,
	startPoint, endPoint GridPoint,
	startOrient, endOrient Orientation,
	rng *rand.Rand,
	costFn CostFunc,
) ([]gridState, error) {
	if int(startPoint) >= len(mg.PointMask) || int(endPoint) >= len(mg.PointMask) {
		return nil, ErrEndpointOutOfBounds
	}
	if !mg.PointMask[startPoint] || !mg.PointMask[endPoint] {
		return nil, ErrEndpointBlocked
	}

	startState := gridState{startPoint, startOrient}
	goalState := gridState{endPoint, endOrient}

	if startState == goalState {
		return []gridState{startState}, nil
	}

	goalGX, goalGY := mg.Grid.gridPointToGridCoords(endPoint)
	heuristic := func(s gridState) int {
		gx, gy := mg.Grid.gridPointToGridCoords(s.Point)
		return abs(gx-goalGX) + abs(gy-goalGY)
	}

	openSet := &astarHeap{}
	heap.Init(openSet)
	cameFrom := make(map[gridState]gridState)
	gScore := make(map[gridState]int)

	var insertCounter uint64

	gScore[startState] = 0
	heap.Push(openSet, astarHeapItem{f: heuristic(startState), counter: insertCounter, state: startState})
	insertCounter++

	var neighborsBuf []gridNeighbor

	for openSet.Len() > 0 {
		item := heap.Pop(openSet).(astarHeapItem)
		current := item.state

		if current == goalState {
			path := []gridState{current}
			cursor := current
			for {
				prev, ok := cameFrom[cursor]
				if !ok {
					break
				}
				cursor = prev
				path = append(path, cursor)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, nil
		}

		currentG, ok := gScore[current]
		if !ok {
			currentG = maxScore
		}

		neighborsBuf = mg.fillNeighbors(current.Point, current.Orientation, neighborsBuf[:0])
		rng.Shuffle(len(neighborsBuf), func(i, j int) {
			neighborsBuf[i], neighborsBuf[j] = neighborsBuf[j], neighborsBuf[i]
		})

		for _, n := range neighborsBuf {
			if n.Point == current.Point && (current.Point == startPoint || current.Point == endPoint) {
				continue
			}
			if !mg.PointMask[n.Point] {
				continue
			}

			neighborState := gridState{n.Point, n.Orientation}

			stepCost := costFn(current.Point, neighborState.Point, current.Orientation, neighborState.Orientation)
			if stepCost >= maxScore {
				continue
			}

			tentativeG := currentG + stepCost
			if tentativeG < currentG { // overflow guard
				continue
			}

			neighborG, ok := gScore[neighborState]
			if !ok {
				neighborG = maxScore
			}
			if tentativeG >= neighborG {
				continue
			}

			cameFrom[neighborState] = current
			gScore[neighborState] = tentativeG
			f := tentativeG + heuristic(neighborState)
			heap.Push(openSet, astarHeapItem{f: f, counter: insertCounter, state: neighborState})
			insertCounter++
		}
	}

	return nil, ErrGoalNotFound
}
