package gridrouter

// RawArea is a dense integer plane covering the grid, used for O(1)
// range-sum cost queries via its prefix-sum accumulators (see §4.2).
type RawArea struct {
	TopLeft, BottomRight Point
	Width, Height        int
	Size                 int
	NumSegments          int
}

func newRawArea(topLeft, bottomRight Point) RawArea {
	width := bottomRight.X - topLeft.X + 1
	height := bottomRight.Y - topLeft.Y + 1
	return RawArea{
		TopLeft: topLeft, BottomRight: bottomRight,
		Width: width, Height: height,
		Size:        width * height,
		NumSegments: (width-1)*height + (height-1)*width,
	}
}

// pointToRawPoint maps a plane point inside the area to its packed index.
func (a RawArea) pointToRawPoint(p Point) (RawPoint, bool) {
	if p.X < a.TopLeft.X || p.X > a.BottomRight.X || p.Y < a.TopLeft.Y || p.Y > a.BottomRight.Y {
		return 0, false
	}
	x := p.X - a.TopLeft.X
	y := p.Y - a.TopLeft.Y
	return RawPoint(y*a.Width + x), true
}

// rawIndexToPoint is the inverse of pointToRawPoint.
func (a RawArea) rawIndexToPoint(rp RawPoint) Point {
	idx := int(rp)
	x := idx % a.Width
	y := idx / a.Width
	return Point{a.TopLeft.X + x, a.TopLeft.Y + y}
}

func (a RawArea) rawCoords(rp RawPoint) (x, y int) {
	idx := int(rp)
	return idx % a.Width, idx / a.Width
}

// segmentIndexBetween returns the segment index connecting from and to
// when they are unit cardinal neighbors, else (0, false).
func (a RawArea) segmentIndexBetween(from, to Point) (int, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	fx, fy := from.X-a.TopLeft.X, from.Y-a.TopLeft.Y
	switch {
	case dx == 1 && dy == 0:
		return fy*(a.Width-1) + fx, true
	case dx == -1 && dy == 0:
		return fy*(a.Width-1) + fx - 1, true
	case dx == 0 && dy == 1:
		return (a.Width-1)*a.Height + fx*(a.Height-1) + fy, true
	case dx == 0 && dy == -1:
		return (a.Width-1)*a.Height + fx*(a.Height-1) + fy - 1, true
	default:
		return 0, false
	}
}

// Number is the numeric constraint accepted by edgePrefixSums: any scalar
// cost type the caller accumulates prefix sums over.
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}

// edgePrefixSums fills px/py (each length a.Size) so that px[y*width+x] is
// the prefix sum of horizontal segment values up to column x on row y, and
// py[y*width+x] is the prefix sum of vertical segment values up to row y on
// column x. See §4.2 for the exact recurrence.
func edgePrefixSums[T Number](a RawArea, edges []T, px, py []T) {
	for y := 0; y < a.Height; y++ {
		var acc T
		px[y*a.Width] = 0
		for x := 1; x < a.Width; x++ {
			segIdx := y*(a.Width-1) + (x - 1)
			acc += edges[segIdx]
			px[y*a.Width+x] = acc
		}
	}
	for x := 0; x < a.Width; x++ {
		py[x] = 0
	}
	for y := 0; y < a.Height-1; y++ {
		for x := 0; x < a.Width; x++ {
			segIdx := (a.Width-1)*a.Height + x*(a.Height-1) + y
			py[(y+1)*a.Width+x] = py[y*a.Width+x] + edges[segIdx]
		}
	}
}
