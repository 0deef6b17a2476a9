package sweep

import (
	"math"

	"github.com/setanarut/vec"
)

// Paddle key names.
const (
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"
)

// Fallbacks used when paddle inputs are not finite positive numbers.
const (
	DefaultPaddleWidth       = 100.0
	DefaultPaddleHeight      = 10.0
	DefaultPaddleSpeedFactor = 1.0

	// probeRadius is the radius of the circles cast against the side walls to find
	// the travel bound.
	probeRadius = 10.0
)

// PaddleKey is the state of one control key of a paddle.
type PaddleKey struct {
	Key     string
	Pressed bool
	// Clockwise is the direction the key moves the paddle in, before reverse
	// controls are applied.
	Clockwise bool
}

// PaddleConfig describes a paddle to build.
type PaddleConfig struct {
	Center vec.Vec2
	// Width is measured across Direction, Height along it.
	Width, Height float64
	// Direction points from the arena centre towards the goal the paddle guards.
	Direction vec.Vec2
	// ProtectedWallWidth is the length of the goal the paddle guards. The paddle
	// never travels further than half of it from Center.
	ProtectedWallWidth float64
	// SpeedFactor times ProtectedWallWidth is the base speed.
	SpeedFactor float64
	// Walls are the neighbouring walls on the counter-clockwise (0) and clockwise
	// (1) side. Either may be nil.
	Walls    [2]*Segment
	PlayerID int
}

func (cfg PaddleConfig) sanitize() PaddleConfig {
	if !isFiniteVec(cfg.Center) {
		cfg.Center = vec.Vec2{}
	}
	cfg.Width = finitePositive(cfg.Width, DefaultPaddleWidth)
	cfg.Height = finitePositive(cfg.Height, DefaultPaddleHeight)
	cfg.ProtectedWallWidth = finitePositive(cfg.ProtectedWallWidth, cfg.Width)
	cfg.SpeedFactor = finitePositive(cfg.SpeedFactor, DefaultPaddleSpeedFactor)
	if !isFiniteVec(cfg.Direction) || cfg.Direction.LengthSq() <= EPS {
		cfg.Direction = vec.Vec2{X: 0, Y: -1}
	}
	return cfg
}

// Paddle is a composite body of 4 edges and 4 corner points driven by key input.
// It is immovable in collisions (inverse mass 0) and perfectly elastic.
type Paddle struct {
	*Body
	// Keys holds the left and right key, in that order.
	Keys     []PaddleKey
	PlayerID int

	clockwise vec.Vec2
	boundsMin vec.Vec2
	boundsMax vec.Vec2
	width     float64
	height    float64
	angle     float64
	baseSpeed float64
	speed     float64
	reverse   bool
}

// NewPaddle builds a paddle. Unusable inputs are replaced by fallbacks, and when
// the resulting geometry is still not finite the paddle is rebuilt as an
// axis-aligned rectangle of default size at the requested center.
func NewPaddle(cfg PaddleConfig) *Paddle {
	cfg = cfg.sanitize()
	p := &Paddle{
		Body:     NewBody(vec.Vec2{}, 0, 1),
		PlayerID: cfg.PlayerID,
	}
	if !p.build(cfg) {
		p.build(PaddleConfig{
			Center:             cfg.Center,
			Width:              DefaultPaddleWidth,
			Height:             DefaultPaddleHeight,
			Direction:          vec.Vec2{X: 0, Y: -1},
			ProtectedWallWidth: DefaultPaddleWidth * 3,
			SpeedFactor:        DefaultPaddleSpeedFactor,
			PlayerID:           cfg.PlayerID,
		})
	}
	return p
}

// build replaces the geometry of p and reports whether all of it is finite.
func (p *Paddle) build(cfg PaddleConfig) bool {
	for _, sh := range p.shapes {
		sh.body = nil
	}
	p.shapes = nil

	hw := cfg.Width / 2
	hh := cfg.Height / 2
	dir := cfg.Direction.Unit()
	perp := dir.Perp()
	corner := func(sw, sh float64) vec.Vec2 {
		return cfg.Center.Add(perp.Scale(sw * hw)).Add(dir.Scale(sh * hh))
	}

	topLeft := corner(-1, -1)
	topRight := corner(-1, 1)
	bottomLeft := corner(1, -1)
	bottomRight := corner(1, 1)

	NewSegmentShape(p.Body, topLeft, topRight)
	NewSegmentShape(p.Body, bottomLeft, bottomRight)
	NewSegmentShape(p.Body, topLeft, bottomLeft)
	NewSegmentShape(p.Body, topRight, bottomRight)
	for _, c := range []vec.Vec2{topLeft, topRight, bottomLeft, bottomRight} {
		NewCircleShape(p.Body, c, 0)
	}

	p.clockwise = perp.Unit()
	travel := math.Min(p.probeWalls(cfg.Center, dir, perp, hh, cfg.Walls), cfg.ProtectedWallWidth/2)
	travel = math.Max(travel-hw-1, 0)
	p.boundsMin = cfg.Center.Sub(perp.Scale(travel))
	p.boundsMax = cfg.Center.Add(perp.Scale(travel))

	isTopHalf := vec.Vec2{X: 0, Y: -1}.Dot(dir) > 0
	p.Keys = []PaddleKey{
		{Key: KeyLeft, Clockwise: !isTopHalf},
		{Key: KeyRight, Clockwise: isTopHalf},
	}
	p.width = cfg.Width
	p.height = cfg.Height
	p.angle = dir.ToAngle()
	p.baseSpeed = cfg.ProtectedWallWidth * cfg.SpeedFactor
	p.speed = p.baseSpeed
	p.velocity = vec.Vec2{}

	return p.finite()
}

// probeWalls returns how far the front and back of the paddle can slide sideways
// before touching a side wall, measured with unit-speed probe circles.
func (p *Paddle) probeWalls(center, dir, perp vec.Vec2, hh float64, walls [2]*Segment) float64 {
	dist := infinity
	for _, origin := range []vec.Vec2{center.Sub(dir.Scale(hh)), center.Add(dir.Scale(hh))} {
		for i, wall := range walls {
			if wall == nil {
				continue
			}
			v := perp.Neg()
			if i == 1 {
				v = perp
			}
			probe := NewCircleBody(origin, probeRadius, v.Unit())
			circle, _ := probe.ShapeAtIndex(0).Circle()
			if t, ok := WallCollisionTime(circle, wall); ok && t > 0 {
				dist = math.Min(dist, t)
			}
		}
	}
	return dist
}

func (p *Paddle) finite() bool {
	for _, sh := range p.shapes {
		switch c := sh.Class.(type) {
		case *Circle:
			if !isFiniteVec(c.Center) {
				return false
			}
		case *Segment:
			if !isFiniteVec(c.A) || !isFiniteVec(c.B) {
				return false
			}
		}
	}
	return isFiniteVec(p.boundsMin) && isFiniteVec(p.boundsMax) &&
		isFiniteVec(p.clockwise) && isFinite(p.baseSpeed)
}

// Center returns the center of the paddle box.
func (p *Paddle) Center() vec.Vec2 {
	return p.BB().Center()
}

// PressKey sets the pressed state of key. It returns false for unknown keys.
func (p *Paddle) PressKey(key string, pressed bool) bool {
	found := false
	for i := range p.Keys {
		if p.Keys[i].Key == key {
			p.Keys[i].Pressed = pressed
			found = true
		}
	}
	return found
}

// SetReverseControls flips the direction of both keys while set.
func (p *Paddle) SetReverseControls(reverse bool) {
	p.reverse = reverse
}

// ReverseControls reports whether the controls are reversed.
func (p *Paddle) ReverseControls() bool {
	return p.reverse
}

// UpdateVelocity sets the velocity from the pressed keys and returns the time the
// paddle can move at that velocity before reaching its travel bound. It returns
// +Inf and leaves the paddle still when the keys cancel out or the bound in the
// chosen direction is less than one unit away.
func (p *Paddle) UpdateVelocity() float64 {
	moveDirection := 0
	for _, k := range p.Keys {
		if !k.Pressed {
			continue
		}
		if k.Clockwise != p.reverse {
			moveDirection++
		} else {
			moveDirection--
		}
	}

	if moveDirection == 0 {
		p.velocity = vec.Vec2{}
		return infinity
	}

	center := p.Center()
	var dist float64
	if moveDirection > 0 {
		dist = p.boundsMax.Sub(center).Mag()
	} else {
		dist = center.Sub(p.boundsMin).Mag()
	}

	desired := p.clockwise.Scale(float64(moveDirection) * p.speed)
	speed := desired.Mag()
	if dist < 1 || speed <= EPS {
		p.velocity = vec.Vec2{}
		return infinity
	}

	p.velocity = desired
	return dist / speed
}

// Bounds returns the extreme positions of the paddle center.
func (p *Paddle) Bounds() (lo, hi vec.Vec2) {
	return p.boundsMin, p.boundsMax
}

// ClockwiseDirection returns the unit direction of clockwise motion.
func (p *Paddle) ClockwiseDirection() vec.Vec2 {
	return p.clockwise
}

// Speed returns the current speed of the paddle.
func (p *Paddle) Speed() float64 {
	return p.speed
}

// BaseSpeed returns the speed the paddle was built with.
func (p *Paddle) BaseSpeed() float64 {
	return p.baseSpeed
}

// SetSpeed sets the current speed. Negative and non-finite values are ignored.
func (p *Paddle) SetSpeed(speed float64) {
	if isFinite(speed) && speed >= 0 {
		p.speed = speed
	}
}

func (p *Paddle) Width() float64 {
	return p.width
}

func (p *Paddle) Height() float64 {
	return p.height
}

// Angle returns the angle of the paddle direction in radians.
func (p *Paddle) Angle() float64 {
	return p.angle
}
