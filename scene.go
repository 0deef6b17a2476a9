package sweep

import (
	"math"
	"slices"

	"go.uber.org/zap"
)

// Contact describes one collision handled by PlaySimulation.
type Contact struct {
	// Time is the scene elapsed time at the moment of contact.
	Time float64
	// A is the leaf of the body that initiated the contact, B the leaf it touched.
	A, B *Shape
	// ResponseA and ResponseB are what each body's rule asked for. Response is
	// the one that was applied.
	ResponseA, ResponseB Response
	Response             Response
}

// BodyA returns the body owning A.
func (c Contact) BodyA() *Body { return c.A.Body() }

// BodyB returns the body owning B.
func (c Contact) BodyB() *Body { return c.B.Body() }

// StepResult reports what happened during one PlaySimulation call.
type StepResult struct {
	// Iterations is the number of sub-steps run.
	Iterations int
	// CapReached is set when the tick stopped at Config.MaxIterations with time
	// left. Callers should treat it as a soft failure and log it.
	CapReached bool
	// Contacts lists every handled contact in order.
	Contacts []Contact
	// Removed lists the bodies removed by Reset responses in order.
	Removed []*Body
}

// Stats are counters accumulated over the life of a scene.
type Stats struct {
	Ticks            uint64
	SubSteps         uint64
	Contacts         uint64
	CapHits          uint64
	BroadphaseMisses uint64
}

// Scene owns a set of bodies and advances them tick by tick, stopping at every
// contact on the way.
//
// A scene is not safe for concurrent use. Run one scene per match and serialize
// the ticks of each.
type Scene struct {
	cfg         Config
	bodies      []*Body
	elapsedTime float64
	timeScale   float64
	logger      *zap.Logger
	index       SpatialIndexer
	stats       Stats

	// scratch reused between sub-steps
	leaves []*Shape
	swept  []BB
	marks  []uint32
	stamp  uint32
	main   []*Body
}

// NewScene returns an empty scene. Unusable config values are replaced by defaults.
func NewScene(cfg Config) *Scene {
	cfg = cfg.sanitize()
	s := &Scene{
		cfg:       cfg,
		timeScale: cfg.TimeScale,
		logger:    zap.NewNop(),
	}
	if cfg.Broadphase.Enabled {
		switch cfg.Broadphase.Index {
		case IndexBBTree:
			s.index = NewBBTree()
		default:
			s.index = NewQuadtree(cfg.Broadphase.MaxItems, cfg.Broadphase.MaxDepth)
		}
	}
	return s
}

// Config returns the config the scene runs with.
func (s *Scene) Config() Config {
	return s.cfg
}

// SetLogger sets the logger used for contact and broadphase diagnostics.
func (s *Scene) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// SetTimeScale sets the factor applied to every tick's delta time.
// Non-positive and non-finite values are ignored.
func (s *Scene) SetTimeScale(scale float64) {
	if isFinite(scale) && scale > 0 {
		s.timeScale = scale
	}
}

// TimeScale returns the factor applied to every tick's delta time.
func (s *Scene) TimeScale() float64 {
	return s.timeScale
}

// ElapsedTime returns the unscaled time simulated so far.
func (s *Scene) ElapsedTime() float64 {
	return s.elapsedTime
}

// Stats returns the counters of the scene.
func (s *Scene) Stats() Stats {
	return s.stats
}

// AddBody adds body to the scene. Adding a body that belongs to another scene panics.
func (s *Scene) AddBody(body *Body) {
	if body.scene == s {
		return
	}
	if body.scene != nil {
		panic("sweep: body already belongs to another scene")
	}
	body.scene = s
	s.bodies = append(s.bodies, body)
}

// RemoveBody removes body from the scene.
func (s *Scene) RemoveBody(body *Body) {
	if body.scene != s {
		return
	}
	if i := slices.Index(s.bodies, body); i >= 0 {
		s.bodies = slices.Delete(s.bodies, i, i+1)
	}
	body.scene = nil
}

// Contains returns true if body belongs to the scene.
func (s *Scene) Contains(body *Body) bool {
	return body != nil && body.scene == s
}

// Bodies returns the bodies of the scene in insertion order. The slice is owned by
// the scene and must not be modified.
func (s *Scene) Bodies() []*Body {
	return s.bodies
}

// Shapes returns the leaves of every body in the scene.
func (s *Scene) Shapes() []*Shape {
	var out []*Shape
	for _, body := range s.bodies {
		out = append(out, body.shapes...)
	}
	return out
}

func (s *Scene) moveBodies(dt float64) {
	for _, body := range s.bodies {
		body.MoveByDelta(dt)
	}
	s.elapsedTime += dt / s.timeScale
}

type hit struct {
	time float64
	a, b *Shape
}

// PlaySimulation advances the scene by dt scaled by the time scale.
//
// Only leaves of mainBodies initiate contacts; a nil slice lets every body do so.
// Each sub-step moves every body to the earliest contact, lets both bodies' rules
// decide the response and applies it, until the time is used up or
// Config.MaxIterations sub-steps have run.
func (s *Scene) PlaySimulation(dt float64, mainBodies []*Body) StepResult {
	var res StepResult
	if !isFinite(dt) || dt <= 0 {
		return res
	}
	s.stats.Ticks++

	remaining := dt * s.timeScale
	for remaining > EPS {
		if res.Iterations >= s.cfg.MaxIterations {
			res.CapReached = true
			s.stats.CapHits++
			s.logger.Debug("iteration cap reached",
				zap.Int("iterations", res.Iterations),
				zap.Float64("remaining", remaining))
			break
		}
		res.Iterations++
		s.stats.SubSteps++

		main := s.liveBodies(mainBodies)
		h, ok := s.nextCollision(main, remaining)
		if !ok {
			s.moveBodies(remaining)
			break
		}

		t := math.Max(h.time, 0)
		s.moveBodies(t)
		remaining -= t

		res.Contacts = append(res.Contacts, s.handle(h, &res))
	}
	return res
}

func (s *Scene) handle(h hit, res *StepResult) Contact {
	bodyA := h.a.body
	bodyB := h.b.body
	ra := bodyA.Rule.Evaluate(bodyB.Kind)
	rb := bodyB.Rule.Evaluate(bodyA.Kind)
	c := Contact{
		Time:      s.elapsedTime,
		A:         h.a,
		B:         h.b,
		ResponseA: ra,
		ResponseB: rb,
		Response:  Severest(ra, rb),
	}
	s.stats.Contacts++

	if ce := s.logger.Check(zap.DebugLevel, "contact"); ce != nil {
		ce.Write(
			zap.Stringer("response", c.Response),
			zap.Float64("time", c.Time),
			zap.Stringer("a", bodyA.ID),
			zap.Stringer("b", bodyB.ID),
		)
	}

	switch c.Response {
	case Ignore:
		bodyA.MoveByDelta(FatEPS)
		bodyB.MoveByDelta(FatEPS)
	case Bounce:
		bodyA.MoveByDelta(FatEPS)
		bodyB.MoveByDelta(FatEPS)
		Resolve(h.a, h.b)
	case Reset:
		if ra == Reset {
			s.RemoveBody(bodyA)
			res.Removed = append(res.Removed, bodyA)
		}
		if rb == Reset {
			s.RemoveBody(bodyB)
			res.Removed = append(res.Removed, bodyB)
		}
	}
	return c
}

// liveBodies returns the bodies of list that still belong to the scene, or every
// body of the scene when list is nil.
func (s *Scene) liveBodies(list []*Body) []*Body {
	if list == nil {
		return s.bodies
	}
	s.main = s.main[:0]
	for _, body := range list {
		if body.scene == s {
			s.main = append(s.main, body)
		}
	}
	return s.main
}

// nextCollision returns the earliest contact initiated by a leaf of main.
func (s *Scene) nextCollision(main []*Body, remaining float64) (hit, bool) {
	if s.index == nil {
		return s.earliest(main, remaining, false)
	}

	h, ok := s.earliest(main, remaining, true)
	if s.cfg.Broadphase.Verify {
		bh, bok := s.earliest(main, remaining, false)
		if bok != ok || (ok && (bh.a != h.a || bh.b != h.b || bh.time != h.time)) {
			s.stats.BroadphaseMisses++
			s.logger.Error("broadphase result differs from all-pairs test",
				zap.Bool("broadphase_hit", ok),
				zap.Bool("all_pairs_hit", bok),
				zap.Float64("broadphase_time", h.time),
				zap.Float64("all_pairs_time", bh.time),
				zap.Float64("remaining", remaining))
			return bh, bok
		}
	}
	return h, ok
}

func (s *Scene) earliest(main []*Body, remaining float64, useIndex bool) (hit, bool) {
	var best hit
	found := false
	s.eachHit(main, remaining, useIndex, func(a, b *Shape, t float64) {
		if !found || t < best.time {
			best = hit{time: t, a: a, b: b}
			found = true
		}
	})
	return best, found
}

// eachHit calls f for every contact within remaining between a leaf of a main
// body and a leaf of another body, in a fixed order: main body, its leaf, other
// body, its leaf.
// With useIndex, only pairs reported by the broadphase are tested.
func (s *Scene) eachHit(main []*Body, remaining float64, useIndex bool, f func(a, b *Shape, t float64)) {
	if useIndex {
		s.buildIndex(remaining)
	}

	for _, bodyA := range main {
		for _, a := range bodyA.shapes {
			if useIndex {
				s.markCandidates(a)
			}
			for _, bodyB := range s.bodies {
				if bodyA == bodyB {
					continue
				}
				if bodyA.velocity.Sub(bodyB.velocity).LengthSq() < EPS {
					continue
				}
				for _, b := range bodyB.shapes {
					if useIndex && s.marks[b.slot] != s.stamp {
						continue
					}
					t, ok := ShapeCollisionTime(a, b)
					if ok && isFinite(t) && t-EPS <= remaining {
						f(a, b, t)
					}
				}
			}
		}
	}
}

// buildIndex inserts every leaf of the scene with its box swept over the
// lookahead into a fresh index.
func (s *Scene) buildIndex(remaining float64) {
	lookahead := math.Max(s.cfg.Broadphase.Lookahead, remaining) + FatEPS

	s.leaves = s.leaves[:0]
	s.swept = s.swept[:0]
	var bounds BB
	for _, body := range s.bodies {
		for _, sh := range body.shapes {
			sh.slot = len(s.leaves)
			bb := sh.CacheBB().Sweep(body.velocity, lookahead)
			if len(s.leaves) == 0 {
				bounds = bb
			} else {
				bounds = bounds.Merge(bb)
			}
			s.leaves = append(s.leaves, sh)
			s.swept = append(s.swept, bb)
		}
	}

	s.index.Reset(bounds.Grow(s.cfg.Broadphase.Padding))
	for slot, bb := range s.swept {
		s.index.Insert(slot, bb)
	}

	if cap(s.marks) < len(s.leaves) {
		s.marks = make([]uint32, len(s.leaves))
	}
	s.marks = s.marks[:len(s.leaves)]
}

func (s *Scene) markCandidates(a *Shape) {
	s.stamp++
	if s.stamp == 0 {
		clear(s.marks)
		s.stamp = 1
	}
	query := s.swept[a.slot].Grow(FatEPS)
	s.index.Query(query, func(slot int) {
		s.marks[slot] = s.stamp
	})
}
