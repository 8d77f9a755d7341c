// Command gridrouterdemo builds a small fixed scene of placed nodes and
// crossing edges and prints the orthogonal paths the router finds between
// them. Set NETEXT_ROUTING_TRACE_JSON to also dump a JSON trace of the
// rip-up-and-reroute loop.
package main

import (
	"fmt"
	"os"

	"github.com/veschin/gridrouter"
)

func main() {
	router := gridrouter.NewEdgeRouter(gridrouter.RouterOptions{})

	router.AddNode("a", gridrouter.PlacedRectangularNode{
		Center: gridrouter.Point{X: 0, Y: 0},
		Node:   gridrouter.RectangularNode{Size: gridrouter.Size{Width: 20, Height: 10}},
	})
	router.AddNode("b", gridrouter.PlacedRectangularNode{
		Center: gridrouter.Point{X: 100, Y: 0},
		Node:   gridrouter.RectangularNode{Size: gridrouter.Size{Width: 20, Height: 10}},
	})
	router.AddNode("c", gridrouter.PlacedRectangularNode{
		Center: gridrouter.Point{X: 50, Y: 60},
		Node:   gridrouter.RectangularNode{Size: gridrouter.Size{Width: 20, Height: 10}},
	})

	requests := []gridrouter.RouteRequest{
		{
			U: 0, V: 1,
			Start: gridrouter.DirectedPoint{X: 10, Y: 0, Direction: gridrouter.Right},
			End:   gridrouter.DirectedPoint{X: 90, Y: 0, Direction: gridrouter.Left},
		},
		{
			U: 0, V: 2,
			Start: gridrouter.DirectedPoint{X: 0, Y: 5, Direction: gridrouter.Down},
			End:   gridrouter.DirectedPoint{X: 50, Y: 55, Direction: gridrouter.Up},
		},
		{
			U: 1, V: 2,
			Start: gridrouter.DirectedPoint{X: 100, Y: 5, Direction: gridrouter.Down},
			End:   gridrouter.DirectedPoint{X: 50, Y: 55, Direction: gridrouter.Up},
		},
	}

	paths, err := router.RouteEdges(requests)
	if err != nil {
		fmt.Fprintln(os.Stderr, "routing error:", err)
		os.Exit(1)
	}

	for i, path := range paths {
		fmt.Printf("edge %d: %d points\n", i, len(path))
		for _, dp := range path {
			fmt.Printf("  (%d, %d) %v\n", dp.X, dp.Y, dp.Direction)
		}
	}
}
