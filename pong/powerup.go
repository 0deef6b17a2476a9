package pong

import (
	"math"
	"math/rand/v2"

	"github.com/setanarut/sweep"
)

// PowerupType is the effect a power-up applies when a ball collects it.
type PowerupType uint8

const (
	AddBall PowerupType = iota
	IncreasePaddleSpeed
	DecreasePaddleSpeed
	SuperSpeed
	IncreaseBallSize
	DecreaseBallSize
	ReverseControls
)

func (t PowerupType) String() string {
	switch t {
	case AddBall:
		return "add_ball"
	case IncreasePaddleSpeed:
		return "increase_paddle_speed"
	case DecreasePaddleSpeed:
		return "decrease_paddle_speed"
	case SuperSpeed:
		return "super_speed"
	case IncreaseBallSize:
		return "increase_ball_size"
	case DecreaseBallSize:
		return "decrease_ball_size"
	case ReverseControls:
		return "reverse_controls"
	default:
		return "unknown"
	}
}

const (
	powerupRadius      = 10.0
	powerupInverseMass = 0.5
	superSpeedScale    = 1.5
	maxBallRadius      = 50.0
	minBallRadius      = 3.0
)

type powerupInfo struct {
	kind   PowerupType
	weight int
	// zero for instant effects
	duration float64
}

var powerupTable = [...]powerupInfo{
	{AddBall, 40, 0},
	{IncreaseBallSize, 40, 0},
	{IncreasePaddleSpeed, 25, 10},
	{DecreasePaddleSpeed, 25, 10},
	{DecreaseBallSize, 20, 0},
	{SuperSpeed, 15, 10},
	{ReverseControls, 15, 10},
}

func powerupTotalWeight() int {
	total := 0
	for _, p := range powerupTable {
		total += p.weight
	}
	return total
}

// randomPowerup picks an entry of powerupTable with probability proportional to
// its weight.
func randomPowerup(rng *rand.Rand) powerupInfo {
	n := rng.IntN(powerupTotalWeight())
	for _, p := range powerupTable {
		if n < p.weight {
			return p
		}
		n -= p.weight
	}
	return powerupTable[0]
}

// Powerup is a static circle that applies an effect to the board when a ball
// touches it.
type Powerup struct {
	Body      *sweep.Body
	Circle    *sweep.Circle
	Type      PowerupType
	SpawnTime float64

	duration    float64
	taken       bool
	activatedAt float64
}

// Duration returns how long the effect lasts, zero for instant effects.
func (p *Powerup) Duration() float64 {
	return p.duration
}

// Taken reports whether a ball collected the power-up.
func (p *Powerup) Taken() bool {
	return p.taken
}

// ActivatedAt returns the elapsed time at which the power-up was collected.
func (p *Powerup) ActivatedAt() float64 {
	return p.activatedAt
}

// Active reports whether a timed effect is still running at now.
func (p *Powerup) Active(now float64) bool {
	if !p.taken || p.duration == 0 {
		return false
	}
	return now-p.activatedAt+sweep.EPS < p.duration
}

// Remaining returns the time left of the effect at now.
func (p *Powerup) Remaining(now float64) float64 {
	switch {
	case !p.taken:
		return 0
	case p.duration == 0:
		return math.Inf(1)
	default:
		return math.Max(0, p.duration-(now-p.activatedAt))
	}
}

func (p *Powerup) activate(now float64) {
	p.taken = true
	p.activatedAt = now
}
