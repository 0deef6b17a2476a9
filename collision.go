package sweep

import (
	"fmt"
	"math"
)

// WallCollisionTime returns the time at which ball first touches wall, both moving
// with their bodies' velocities.
//
// The test runs in the wall's frame. The wall normal is taken against the relative
// velocity, so two-sided walls and paddle edges are hit on the face the ball
// approaches. Contacts in the past, parallel motion, degenerate walls and hit
// points beyond the ends of the segment report no contact.
func WallCollisionTime(ball *Circle, wall *Segment) (float64, bool) {
	bv := ball.Velocity()
	wv := wall.Velocity()
	rvx := bv.X - wv.X
	rvy := bv.Y - wv.Y

	sx := ball.Center.X - wall.A.X
	sy := ball.Center.Y - wall.A.Y

	wx := wall.B.X - wall.A.X
	wy := wall.B.Y - wall.A.Y
	wallLenSq := wx*wx + wy*wy
	if wallLenSq <= EPS {
		return 0, false
	}
	wallLen := math.Sqrt(wallLenSq)

	nx := -wy / wallLen
	ny := wx / wallLen
	if rvx*nx+rvy*ny >= -EPS {
		nx, ny = -nx, -ny
	}

	alongNormal := rvx*nx + rvy*ny
	if math.Abs(alongNormal) < EPS {
		return 0, false
	}

	distance := sx*nx + sy*ny
	t := (ball.Radius - distance) / alongNormal
	if t < 0 || !isFinite(t) {
		return 0, false
	}

	bx := sx + rvx*t
	by := sy + rvy*t
	segmentT := (bx*wx + by*wy) / wallLenSq
	if segmentT < 0 || segmentT > 1 {
		return 0, false
	}
	return t, true
}

// BallCollisionTime returns the time at which the circles a and b first touch.
//
// The smallest root of |Δp + Δv·t| = rA + rB is reported when it lies in
// [-EPS, 1+EPS]. The result is symmetric in a and b.
func BallCollisionTime(a, b *Circle) (float64, bool) {
	av := a.Velocity()
	bv := b.Velocity()
	sx := b.Center.X - a.Center.X
	sy := b.Center.Y - a.Center.Y
	rvx := bv.X - av.X
	rvy := bv.Y - av.Y
	rsum := a.Radius + b.Radius

	coeffA := rvx*rvx + rvy*rvy
	coeffB := 2 * (sx*rvx + sy*rvy)
	coeffC := sx*sx + sy*sy - rsum*rsum

	roots := SolveQuadratic(coeffA, coeffB, coeffC)
	if len(roots) == 0 {
		return 0, false
	}
	t := roots[0]
	if t >= -EPS && t <= 1+EPS {
		return t, true
	}
	return 0, false
}

// ResolveBallCollision applies the contact impulse between two touching circles.
// Separating circles are left untouched.
func ResolveBallCollision(a, b *Circle) {
	dx := b.Center.X - a.Center.X
	dy := b.Center.Y - a.Center.Y
	distSq := dx*dx + dy*dy
	if distSq <= EPS {
		return
	}
	dist := math.Sqrt(distSq)
	nx := dx / dist
	ny := dy / dist

	av := a.Velocity()
	bv := b.Velocity()
	alongNormal := (bv.X-av.X)*nx + (bv.Y-av.Y)*ny
	if alongNormal > 0 {
		return
	}

	j, ok := impulse(a.Shape, b.Shape, alongNormal)
	if !ok {
		return
	}
	ima := a.InverseMass()
	imb := b.InverseMass()
	av.X -= nx * j * ima
	av.Y -= ny * j * ima
	bv.X += nx * j * imb
	bv.Y += ny * j * imb
	a.SetVelocity(av)
	b.SetVelocity(bv)
}

// ResolveCircleLineCollision applies the contact impulse between a circle and a
// segment it touches.
func ResolveCircleLineCollision(ball *Circle, wall *Segment) {
	wx := wall.B.X - wall.A.X
	wy := wall.B.Y - wall.A.Y
	wallLenSq := wx*wx + wy*wy
	if wallLenSq <= EPS {
		return
	}
	wallLen := math.Sqrt(wallLenSq)

	bv := ball.Velocity()
	wv := wall.Velocity()
	rvx := bv.X - wv.X
	rvy := bv.Y - wv.Y

	nx := -wy / wallLen
	ny := wx / wallLen
	if rvx*nx+rvy*ny > 0 {
		nx, ny = -nx, -ny
	}

	j, ok := impulse(ball.Shape, wall.Shape, rvx*nx+rvy*ny)
	if !ok {
		return
	}
	imb := ball.InverseMass()
	imw := wall.InverseMass()
	bv.X += nx * j * imb
	bv.Y += ny * j * imb
	wv.X -= nx * j * imw
	wv.Y -= ny * j * imw
	ball.SetVelocity(bv)
	wall.SetVelocity(wv)
}

// impulse returns the magnitude of the contact impulse for a pair whose relative
// velocity along the contact normal is alongNormal. The pair restitution is the
// smaller of the two.
func impulse(a, b *Shape, alongNormal float64) (float64, bool) {
	massSum := a.InverseMass() + b.InverseMass()
	if massSum <= EPS {
		return 0, false
	}
	e := math.Min(a.Restitution(), b.Restitution())
	return -(1 + e) * alongNormal / massSum, true
}

// CircleCircleOverlapAt reports whether a and b overlap after both move for t.
func CircleCircleOverlapAt(a, b *Circle, t float64) bool {
	pa := a.PositionAt(t)
	pb := b.PositionAt(t)
	dx := pb.X - pa.X
	dy := pb.Y - pa.Y
	r := a.Radius + b.Radius
	return dx*dx+dy*dy <= r*r+EPS
}

// CircleSegmentOverlapAt reports whether ball and wall overlap after both move for t.
func CircleSegmentOverlapAt(ball *Circle, wall *Segment, t float64) bool {
	c := ball.PositionAt(t)
	wv := wall.Velocity()
	ax := wall.A.X + wv.X*t
	ay := wall.A.Y + wv.Y*t
	wx := wall.B.X - wall.A.X
	wy := wall.B.Y - wall.A.Y
	lenSq := wx*wx + wy*wy
	if lenSq <= EPS {
		return false
	}

	proj := clamp01(((c.X-ax)*wx + (c.Y-ay)*wy) / lenSq)
	dx := c.X - (ax + wx*proj)
	dy := c.Y - (ay + wy*proj)
	return dx*dx+dy*dy <= ball.Radius*ball.Radius+EPS
}

// ShapeCollisionTime returns the time of impact between two leaves of any kind.
// Pairs without a solver, such as two segments, never collide.
func ShapeCollisionTime(a, b *Shape) (float64, bool) {
	switch ca := a.Class.(type) {
	case *Circle:
		switch cb := b.Class.(type) {
		case *Circle:
			return BallCollisionTime(ca, cb)
		case *Segment:
			return WallCollisionTime(ca, cb)
		}
	case *Segment:
		if cb, ok := b.Class.(*Circle); ok {
			return WallCollisionTime(cb, ca)
		}
	}
	return 0, false
}

// Resolve applies the bounce between two touching leaves. Pairs outside
// circle/circle and circle/segment panic: a new primitive kind needs resolution
// code for every existing kind.
func Resolve(a, b *Shape) {
	switch ca := a.Class.(type) {
	case *Circle:
		switch cb := b.Class.(type) {
		case *Circle:
			ResolveBallCollision(ca, cb)
			return
		case *Segment:
			ResolveCircleLineCollision(ca, cb)
			return
		}
	case *Segment:
		if cb, ok := b.Class.(*Circle); ok {
			ResolveCircleLineCollision(cb, ca)
			return
		}
	}
	panic(fmt.Sprintf("sweep: no collision resolution between %v and %v", a, b))
}
