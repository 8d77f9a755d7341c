package gridrouter

import (
	"math/rand"
	"sort"
)

// routingSeed derives a stable 64-bit seed from the sorted descriptors of
// the requested edges and the router's current placed nodes, so that two
// calls with identical inputs reproduce identical routing, independent of
// input order. Modeled on the SplitMix64-style avalanche mixing used for
// derived RNG streams elsewhere in the ecosystem, since Go's standard
// library has no stable cross-run hasher equivalent to a fixed-seed
// DefaultHasher.
func routingSeed(requests []RouteRequest, nodes []PlacedRectangularNode) uint64 {
	var h uint64 = 0xcbf29ce484222325 // FNV offset basis, used as the mix seed
	mix := func(v int64) {
		h ^= uint64(v)
		h *= 0x9e3779b97f4a7c15
		h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
		h = (h ^ (h >> 27)) * 0x94d049bb133111eb
		h ^= h >> 31
	}

	mix(int64(len(requests)))
	type edgeKey struct{ sx, sy, sd, ex, ey, ed int64 }
	edgeKeys := make([]edgeKey, 0, len(requests))
	for _, r := range requests {
		edgeKeys = append(edgeKeys, edgeKey{
			int64(r.Start.X), int64(r.Start.Y), int64(r.Start.Direction),
			int64(r.End.X), int64(r.End.Y), int64(r.End.Direction),
		})
	}
	sort.Slice(edgeKeys, func(i, j int) bool {
		a, b := edgeKeys[i], edgeKeys[j]
		if a.sx != b.sx {
			return a.sx < b.sx
		}
		if a.sy != b.sy {
			return a.sy < b.sy
		}
		if a.sd != b.sd {
			return a.sd < b.sd
		}
		if a.ex != b.ex {
			return a.ex < b.ex
		}
		if a.ey != b.ey {
			return a.ey < b.ey
		}
		return a.ed < b.ed
	})
	for _, k := range edgeKeys {
		mix(k.sx)
		mix(k.sy)
		mix(k.sd)
		mix(k.ex)
		mix(k.ey)
		mix(k.ed)
	}

	mix(int64(len(nodes)))
	type nodeKey struct{ cx, cy, w, h int64 }
	nodeKeys := make([]nodeKey, 0, len(nodes))
	for _, n := range nodes {
		nodeKeys = append(nodeKeys, nodeKey{int64(n.Center.X), int64(n.Center.Y), int64(n.Node.Size.Width), int64(n.Node.Size.Height)})
	}
	sort.Slice(nodeKeys, func(i, j int) bool {
		a, b := nodeKeys[i], nodeKeys[j]
		if a.cx != b.cx {
			return a.cx < b.cx
		}
		if a.cy != b.cy {
			return a.cy < b.cy
		}
		if a.w != b.w {
			return a.w < b.w
		}
		return a.h < b.h
	})
	for _, k := range nodeKeys {
		mix(k.cx)
		mix(k.cy)
		mix(k.w)
		mix(k.h)
	}

	return h
}

// rngFromSeed returns a deterministic *rand.Rand for a given uint64 seed.
func rngFromSeed(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}
