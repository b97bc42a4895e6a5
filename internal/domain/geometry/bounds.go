package geometry

// IntervalsOverlap reports whether the closed intervals [min1,max1] and
// [min2,max2] share at least one value
func IntervalsOverlap(min1, max1, min2, max2 int) bool {
	return max(min1, min2) <= min(max1, max2)
}

// Bounds is an axis-aligned rectangle of cells, inclusive on both corners
type Bounds struct {
	Lower Point `json:"lower"`
	Upper Point `json:"upper"`
}

// Size returns the footprint dimensions in cells
func (b Bounds) Size() Point {
	return Point{X: b.Upper.X - b.Lower.X + 1, Y: b.Upper.Y - b.Lower.Y + 1}
}

// Contains reports whether p lies inside b
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Lower.X && p.X <= b.Upper.X && p.Y >= b.Lower.Y && p.Y <= b.Upper.Y
}

// Overlaps reports whether b and o intersect on both axes
func (b Bounds) Overlaps(o Bounds) bool {
	return IntervalsOverlap(b.Lower.X, b.Upper.X, o.Lower.X, o.Upper.X) &&
		IntervalsOverlap(b.Lower.Y, b.Upper.Y, o.Lower.Y, o.Upper.Y)
}

// Union returns the smallest bounds covering both b and o
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Lower: Point{X: min(b.Lower.X, o.Lower.X), Y: min(b.Lower.Y, o.Lower.Y)},
		Upper: Point{X: max(b.Upper.X, o.Upper.X), Y: max(b.Upper.Y, o.Upper.Y)},
	}
}
