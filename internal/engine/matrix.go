package engine

import (
	"math"

	"github.com/adboard/adboard/backend-go/internal/document"
)

// Matrix2D is a 2D affine transform stored as [a, b, c, d, e, f]:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
// a/d carry scale, b/c carry rotation, e/f carry translation.
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Multiply returns m * other, applying other first.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformRect transforms a rectangle and returns the axis-aligned bounding
// box of its four transformed corners.
func (m Matrix2D) TransformRect(r Rect) Rect {
	x0, y0 := m.TransformPoint(r.X, r.Y)
	x1, y1 := m.TransformPoint(r.Right(), r.Y)
	x2, y2 := m.TransformPoint(r.Right(), r.Bottom())
	x3, y3 := m.TransformPoint(r.X, r.Bottom())

	minX := min(x0, min(x1, min(x2, x3)))
	minY := min(y0, min(y1, min(y2, y3)))
	maxX := max(x0, max(x1, max(x2, x3)))
	maxY := max(y0, max(y1, max(y2, y3)))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Invert returns the inverse of the matrix, or Identity if degenerate.
func (m Matrix2D) Invert() Matrix2D {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity()
	}

	inv := 1.0 / det
	return Matrix2D{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

// ElementMatrix builds the local transform of a canvas element: rotation and
// the two scale factors applied around the element's center, then translation
// to its position.
func ElementMatrix(el *document.CanvasElement) Matrix2D {
	cx := el.Width / 2
	cy := el.Height / 2

	rad := el.Rotation * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	sx := el.ScaleX
	sy := el.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	// T(x+cx, y+cy) * R(r) * S(sx, sy) * T(-cx, -cy), collapsed.
	return Matrix2D{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		el.X + cx - cos*sx*cx + sin*sy*cy,
		el.Y + cy - sin*sx*cx - cos*sy*cy,
	}
}

// ElementBounds returns the world axis-aligned bounding box of a canvas
// element after its rotation and scale are applied.
func ElementBounds(el *document.CanvasElement) Rect {
	local := Rect{Width: el.Width, Height: el.Height}
	return ElementMatrix(el).TransformRect(local)
}
