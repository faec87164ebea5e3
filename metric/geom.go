package metric

import "fmt"

// Point is a position in fixed-point coordinates.
type Point struct {
	X, Y Fixed
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y Fixed) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X.Add(q.X), Y: p.Y.Add(q.Y)} }

func (p Point) String() string { return fmt.Sprintf("(%s,%s)", p.X, p.Y) }

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y          Fixed
	Width, Height Fixed
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() Fixed { return r.X.Add(r.Width) }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() Fixed { return r.Y.Add(r.Height) }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// IsNull reports whether r has both zero width and zero height.
func (r Rect) IsNull() bool { return r.Width == 0 && r.Height == 0 }

// Union returns the smallest rectangle containing r and s.
// A null rectangle does not contribute.
func (r Rect) Union(s Rect) Rect {
	if r.IsNull() {
		return s
	}
	if s.IsNull() {
		return r
	}
	x0, y0 := Min(r.X, s.X), Min(r.Y, s.Y)
	x1, y1 := Max(r.Right(), s.Right()), Max(r.Bottom(), s.Bottom())
	return Rect{X: x0, Y: y0, Width: x1.Sub(x0), Height: y1.Sub(y0)}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s,%s %sx%s]", r.X, r.Y, r.Width, r.Height)
}
