package gridrouter

import "github.com/tidwall/rtree"

// spatialIndex wraps an R-tree keyed by object-index handles, mirroring
// placed_node_tree. It is an accelerated store only: nothing in the
// routing path depends on its contents, only on placedNodes itself.
type spatialIndex struct {
	tree rtree.RTree
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{}
}

func nodeCorners(node PlacedRectangularNode) (min, max [2]float64) {
	tl, br := node.TopLeft(), node.BottomRight()
	return [2]float64{float64(tl.X), float64(tl.Y)}, [2]float64{float64(br.X), float64(br.Y)}
}

func (si *spatialIndex) Insert(handle int, node PlacedRectangularNode) {
	min, max := nodeCorners(node)
	si.tree.Insert(min, max, handle)
}

func (si *spatialIndex) Delete(handle int, node PlacedRectangularNode) {
	min, max := nodeCorners(node)
	si.tree.Delete(min, max, handle)
}

// Nearest returns the handle of the placed node whose rectangle lies
// closest to p, or false if the index is empty.
func (si *spatialIndex) Nearest(p Point) (int, bool) {
	target := [2]float64{float64(p.X), float64(p.Y)}
	found := false
	var result int
	si.tree.Nearby(
		func(min, max [2]float64, data interface{}) float64 {
			dx := 0.0
			if target[0] < min[0] {
				dx = min[0] - target[0]
			} else if target[0] > max[0] {
				dx = target[0] - max[0]
			}
			dy := 0.0
			if target[1] < min[1] {
				dy = min[1] - target[1]
			} else if target[1] > max[1] {
				dy = target[1] - max[1]
			}
			return dx*dx + dy*dy
		},
		func(min, max [2]float64, data interface{}, dist float64) bool {
			result = data.(int)
			found = true
			return false
		},
	)
	return result, found
}
