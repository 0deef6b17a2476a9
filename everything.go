package sweep

import (
	"fmt"
	"math"
)

const (
	// EPS is the tolerance for degeneracy and equality checks.
	EPS float64 = 1e-9
	// FatEPS is the time two just-collided leaves are nudged along their own
	// motion so the same zero-distance contact is not detected again.
	FatEPS float64 = 1e-5
)

var infinity = math.Inf(1)

// Default tuning values used by DefaultConfig.
const (
	DefaultMaxIterations     = 1000
	DefaultBroadphasePadding = 64.0
	DefaultLookahead         = 0.0
	DefaultQuadtreeMaxItems  = 8
	DefaultQuadtreeMaxDepth  = 5
)

// Response is what a body wants to happen when it touches another body.
//
// The numeric order is the precedence used by the Scene: Reset > Bounce > Ignore.
type Response uint8

const (
	// Ignore lets the bodies pass through each other.
	Ignore Response = iota
	// Bounce resolves the contact with an impulse.
	Bounce
	// Reset removes the body from the scene.
	Reset
)

func (r Response) String() string {
	switch r {
	case Ignore:
		return "IGNORE"
	case Bounce:
		return "BOUNCE"
	case Reset:
		return "RESET"
	default:
		return fmt.Sprintf("Response(%d)", uint8(r))
	}
}

// Severest returns the response with the highest precedence.
func Severest(a, b Response) Response {
	return max(a, b)
}

// BodyKind tags bodies so rules can react to what they touched.
// The engine gives kinds no meaning of its own.
type BodyKind uint

// AnyKind is the zero kind. Bodies created without an explicit kind carry it.
const AnyKind BodyKind = 0

type ruleTag uint8

const (
	ruleBounce ruleTag = iota
	ruleIgnore
	ruleResetOn
	ruleIgnoreOn
)

// Rule is the collision response of a body, evaluated by the Scene against the
// kind of the other body. The zero value bounces off everything.
type Rule struct {
	tag  ruleTag
	kind BodyKind
}

// BounceRule returns a rule that bounces off everything.
func BounceRule() Rule { return Rule{tag: ruleBounce} }

// IgnoreRule returns a rule that passes through everything.
func IgnoreRule() Rule { return Rule{tag: ruleIgnore} }

// ResetOnContactWith returns a rule that resets the body when it touches a body of
// the given kind and bounces otherwise.
func ResetOnContactWith(kind BodyKind) Rule { return Rule{tag: ruleResetOn, kind: kind} }

// IgnoreContactWith returns a rule that asks to pass through bodies of the given kind
// and bounces otherwise. The body only passes through when the other body's rule
// does not ask for a bounce, since Bounce outranks Ignore.
func IgnoreContactWith(kind BodyKind) Rule { return Rule{tag: ruleIgnoreOn, kind: kind} }

// Evaluate returns the response of the rule's owner to touching a body of the given kind.
func (r Rule) Evaluate(other BodyKind) Response {
	switch r.tag {
	case ruleIgnore:
		return Ignore
	case ruleResetOn:
		if other == r.kind {
			return Reset
		}
	case ruleIgnoreOn:
		if other == r.kind {
			return Ignore
		}
	}
	return Bounce
}

func (r Rule) String() string {
	switch r.tag {
	case ruleIgnore:
		return "Ignore"
	case ruleResetOn:
		return fmt.Sprintf("ResetOnContactWith(%d)", r.kind)
	case ruleIgnoreOn:
		return fmt.Sprintf("IgnoreContactWith(%d)", r.kind)
	default:
		return "Bounce"
	}
}

// IsNearly reports whether x is within EPS of n.
func IsNearly(x, n float64) bool {
	return math.Abs(x-n) < EPS
}

// SolveQuadratic returns the real roots of a*x^2 + b*x + c = 0 in ascending order.
//
// A degenerate leading coefficient falls back to the linear equation. A
// discriminant within EPS of zero is treated as a single tangent root.
func SolveQuadratic(a, b, c float64) []float64 {
	if IsNearly(a, 0) {
		if IsNearly(b, 0) {
			return nil
		}
		return []float64{-c / b}
	}

	disc := b*b - 4*a*c
	if disc < -EPS {
		return nil
	}
	if disc < EPS {
		return []float64{-b / (2 * a)}
	}

	sqrtDisc := math.Sqrt(disc)
	r0 := (-b - sqrtDisc) / (2 * a)
	r1 := (-b + sqrtDisc) / (2 * a)
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return []float64{r0, r1}
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// finitePositive returns f when it is finite and > 0, fallback otherwise.
func finitePositive(f, fallback float64) float64 {
	if isFinite(f) && f > 0 {
		return f
	}
	return fallback
}
