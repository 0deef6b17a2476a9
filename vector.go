package sweep

import (
	"math"

	"github.com/setanarut/vec"
)

// The InPlace variants mutate their first argument and return it, so hot loops can
// reuse one vector instead of building new ones.

func AddInPlace(dst *vec.Vec2, v vec.Vec2) *vec.Vec2 {
	dst.X += v.X
	dst.Y += v.Y
	return dst
}

func SubInPlace(dst *vec.Vec2, v vec.Vec2) *vec.Vec2 {
	dst.X -= v.X
	dst.Y -= v.Y
	return dst
}

func ScaleInPlace(dst *vec.Vec2, s float64) *vec.Vec2 {
	dst.X *= s
	dst.Y *= s
	return dst
}

// AddScaledInPlace adds v*s to dst.
func AddScaledInPlace(dst *vec.Vec2, v vec.Vec2, s float64) *vec.Vec2 {
	dst.X += v.X * s
	dst.Y += v.Y * s
	return dst
}

func NormalizeInPlace(dst *vec.Vec2) *vec.Vec2 {
	l := dst.Mag()
	if l == 0 {
		dst.X, dst.Y = 0, 0
		return dst
	}
	dst.X /= l
	dst.Y /= l
	return dst
}

func RotateInPlace(dst *vec.Vec2, angle float64) *vec.Vec2 {
	sin, cos := math.Sincos(angle)
	dst.X, dst.Y = dst.X*cos-dst.Y*sin, dst.X*sin+dst.Y*cos
	return dst
}

func PerpInPlace(dst *vec.Vec2) *vec.Vec2 {
	dst.X, dst.Y = -dst.Y, dst.X
	return dst
}

func isFiniteVec(v vec.Vec2) bool {
	return isFinite(v.X) && isFinite(v.Y)
}
