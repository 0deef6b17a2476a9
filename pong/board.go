// Package pong runs polygon-arena pong matches on top of the sweep engine.
package pong

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/setanarut/vec"
	"go.uber.org/zap"

	"github.com/setanarut/sweep"
)

// Body kinds used on a board.
const (
	KindWall sweep.BodyKind = iota + 1
	KindGoal
	KindBall
	KindPaddle
	KindPowerup
)

// NoPlayer marks a neutral wall.
const NoPlayer = -1

const (
	ballRadius = 10.0
	// powerupMargin keeps spawned power-ups away from the paddles.
	powerupMargin = 160.0
)

// ErrInvalidDelta is returned by Tick for a delta time that is not a positive number.
var ErrInvalidDelta = errors.New("pong: invalid delta time")

// Ball is a movable circle.
type Ball struct {
	Body   *sweep.Body
	Circle *sweep.Circle
}

// Wall is one side of the arena. A wall with a player is that player's goal.
type Wall struct {
	Body     *sweep.Body
	Segment  *sweep.Segment
	PlayerID int
}

// IsGoal reports whether the wall belongs to a player.
func (w *Wall) IsGoal() bool {
	return w.PlayerID != NoPlayer
}

// Board is one match: a regular polygon arena whose goal sides are guarded by
// paddles, with balls and power-ups in between.
//
// All methods are safe for concurrent use.
type Board struct {
	ID uuid.UUID

	mu       sync.Mutex
	opts     Options
	players  []int
	scene    *sweep.Scene
	logger   *zap.Logger
	rng      *rand.Rand
	center   vec.Vec2
	walls    []*Wall
	balls    []*Ball
	paddles  []*sweep.Paddle
	powerups []*Powerup
	score    map[int]int

	nextPowerupSpawn   float64
	powerupSpawnRadius float64
	ballBodies         []*sweep.Body
}

// NewBoard builds a board for players. Fewer than three players play on a square
// with neutral walls on the free sides.
func NewBoard(players []int, opts Options, logger *zap.Logger) (*Board, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Board{
		ID:      uuid.New(),
		opts:    opts,
		players: slices.Clone(players),
		scene:   sweep.NewScene(opts.Engine),
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		score:   make(map[int]int),
		center: vec.Vec2{
			X: math.Floor(opts.CanvasWidth / 2),
			Y: math.Floor(opts.CanvasHeight / 2),
		},
	}
	b.logger = logger.With(zap.Stringer("board", b.ID))
	b.scene.SetLogger(b.logger.Named("scene"))

	b.buildArena()
	for range opts.AmountOfBalls {
		b.spawnBall(b.center, b.randomBallVelocity(), ballRadius, 1)
	}
	return b, nil
}

// wallSlots returns the player of every arena side, NoPlayer for neutral sides.
func wallSlots(players []int) []int {
	switch len(players) {
	case 0:
		return []int{NoPlayer, NoPlayer, NoPlayer, NoPlayer}
	case 1:
		return []int{NoPlayer, NoPlayer, players[0], NoPlayer}
	case 2:
		return []int{NoPlayer, players[1], NoPlayer, players[0]}
	default:
		return slices.Clone(players)
	}
}

func (b *Board) buildArena() {
	size := math.Min(b.opts.CanvasWidth, b.opts.CanvasHeight)
	halfSize := size / 2
	slots := wallSlots(b.players)
	n := float64(len(slots))
	angleStep := 2 * math.Pi / n
	halfAngleStep := math.Pi / n
	up := vec.Vec2{X: 0, Y: -1}

	for i, pid := range slots {
		a := b.center.Add(up.Rotate(float64(i)*angleStep-halfAngleStep).Scale(halfSize))
		c := b.center.Add(up.Rotate(float64(i)*angleStep+halfAngleStep).Scale(halfSize))
		b.addWall(a, c, pid)
	}

	// distance from the arena center to the middle of every side
	apothem := halfSize * math.Cos(halfAngleStep)
	for i, pid := range slots {
		if pid == NoPlayer {
			continue
		}
		wallLen := b.walls[i].Segment.Length()
		dir := up.Rotate(float64(i)*angleStep)
		paddle := sweep.NewPaddle(sweep.PaddleConfig{
			Center:             b.center.Add(dir.Scale(apothem - b.opts.PaddleWallOffset)),
			Width:              b.opts.PaddleWidthFactor * wallLen,
			Height:             b.opts.PaddleHeight,
			Direction:          dir,
			ProtectedWallWidth: wallLen,
			SpeedFactor:        b.opts.PaddleSpeedFactor,
			Walls: [2]*sweep.Segment{
				b.walls[(i-1+len(slots))%len(slots)].Segment,
				b.walls[(i+1)%len(slots)].Segment,
			},
			PlayerID: pid,
		})
		paddle.Kind = KindPaddle
		paddle.UserData = paddle
		b.paddles = append(b.paddles, paddle)
		b.scene.AddBody(paddle.Body)
	}

	b.powerupSpawnRadius = math.Max(0, apothem-(b.opts.PaddleHeight/2+powerupMargin))
}

func (b *Board) addWall(p1, p2 vec.Vec2, playerID int) *Wall {
	body := sweep.NewSegmentBody(p1, p2, vec.Vec2{})
	seg, _ := body.ShapeAtIndex(0).Segment()
	w := &Wall{Body: body, Segment: seg, PlayerID: playerID}
	body.Kind = KindWall
	if w.IsGoal() {
		body.Kind = KindGoal
	}
	body.UserData = w
	b.walls = append(b.walls, w)
	b.scene.AddBody(body)
	return w
}

func (b *Board) randomBallVelocity() vec.Vec2 {
	dir := vec.Vec2{X: 0, Y: -1}.Rotate(b.rng.Float64()*2*math.Pi)
	return dir.Scale(b.opts.BallSpeed)
}

func (b *Board) spawnBall(center, velocity vec.Vec2, radius, inverseMass float64) *Ball {
	body := sweep.NewCircleBody(center, radius, velocity)
	body.SetInverseMass(inverseMass)
	body.Kind = KindBall
	body.Rule = sweep.ResetOnContactWith(KindGoal)
	circle, _ := body.ShapeAtIndex(0).Circle()
	ball := &Ball{Body: body, Circle: circle}
	body.UserData = ball
	b.balls = append(b.balls, ball)
	b.scene.AddBody(body)
	return ball
}

// respawnBall puts a ball removed by a goal back at the arena center.
func (b *Board) respawnBall(ball *Ball) {
	ball.Circle.Center = b.center
	ball.Body.SetVelocity(b.randomBallVelocity())
	b.scene.AddBody(ball.Body)
	b.logger.Debug("ball respawned", zap.Stringer("ball", ball.Body.ID))
}

func (b *Board) spawnPowerup() {
	angle := b.rng.Float64() * 2 * math.Pi
	dist := math.Sqrt(b.rng.Float64()) * b.powerupSpawnRadius
	pos := b.center.Add(vec.Vec2{X: 1, Y: 0}.Rotate(angle).Scale(dist))
	info := randomPowerup(b.rng)

	body := sweep.NewCircleBody(pos, powerupRadius, vec.Vec2{})
	body.SetInverseMass(powerupInverseMass)
	body.Kind = KindPowerup
	body.Rule = sweep.ResetOnContactWith(KindBall)
	circle, _ := body.ShapeAtIndex(0).Circle()
	p := &Powerup{
		Body:      body,
		Circle:    circle,
		Type:      info.kind,
		SpawnTime: b.scene.ElapsedTime(),
		duration:  info.duration,
	}
	body.UserData = p
	b.powerups = append(b.powerups, p)
	b.scene.AddBody(body)

	b.logger.Debug("powerup spawned",
		zap.Stringer("type", p.Type),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y))
}

// Tick advances the board by dt. The time is cut into sub-ticks so that no paddle
// moves past its travel bound.
func (b *Board) Tick(dt float64) error {
	if !finite(dt) || dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.expirePowerups()
	if b.opts.PowerupFrequency > 0 && b.scene.ElapsedTime() >= b.nextPowerupSpawn {
		b.spawnPowerup()
		b.nextPowerupSpawn += b.opts.PowerupFrequency * (0.8 + b.rng.Float64()*0.4)
	}

	maxSubTicks := b.scene.Config().MaxIterations
	remaining := dt
	for i := 0; remaining > sweep.EPS; i++ {
		if i >= maxSubTicks {
			b.logger.Warn("sub-tick limit reached", zap.Int("sub_ticks", i), zap.Float64("remaining", remaining))
			break
		}

		step := remaining
		for _, p := range b.paddles {
			// paddle travel time is in scaled time
			if t := p.UpdateVelocity() / b.scene.TimeScale(); t < step {
				step = t
			}
		}

		res := b.scene.PlaySimulation(step, b.liveBalls())
		if res.CapReached {
			b.logger.Warn("iteration cap reached",
				zap.Int("iterations", res.Iterations),
				zap.Float64("elapsed", b.scene.ElapsedTime()))
		}
		b.handleContacts(res)
		remaining -= step
	}
	return nil
}

func (b *Board) liveBalls() []*sweep.Body {
	b.ballBodies = b.ballBodies[:0]
	for _, ball := range b.balls {
		b.ballBodies = append(b.ballBodies, ball.Body)
	}
	return b.ballBodies
}

func (b *Board) handleContacts(res sweep.StepResult) {
	var scored []*Ball
	for _, c := range res.Contacts {
		if c.Response != sweep.Reset {
			continue
		}
		ball, ok := c.BodyA().UserData.(*Ball)
		if !ok {
			continue
		}
		switch other := c.BodyB().UserData.(type) {
		case *Wall:
			if !other.IsGoal() {
				continue
			}
			b.score[other.PlayerID]--
			b.logger.Info("goal",
				zap.Int("player", other.PlayerID),
				zap.Int("score", b.score[other.PlayerID]),
				zap.Float64("elapsed", c.Time))
			scored = append(scored, ball)
		case *Powerup:
			b.applyPowerup(other, ball)
		}
	}
	for _, ball := range scored {
		b.respawnBall(ball)
	}
}

func (b *Board) applyPowerup(p *Powerup, ball *Ball) {
	b.logger.Info("powerup collected",
		zap.Stringer("type", p.Type),
		zap.Stringer("ball", ball.Body.ID))

	switch p.Type {
	case AddBall:
		spread := b.rng.Float64()*math.Pi/4 - math.Pi/8
		b.spawnBall(ball.Circle.Center, ball.Body.Velocity().Rotate(spread), ball.Circle.Radius, ball.Body.InverseMass())
	case IncreasePaddleSpeed:
		b.scalePaddleSpeed(2)
	case DecreasePaddleSpeed:
		b.scalePaddleSpeed(0.5)
	case SuperSpeed:
		b.scene.SetTimeScale(superSpeedScale)
	case IncreaseBallSize:
		if ball.Circle.Radius < maxBallRadius {
			b.resizeBall(ball, 1.5)
		}
	case DecreaseBallSize:
		if ball.Circle.Radius > minBallRadius {
			b.resizeBall(ball, 0.75)
		}
	case ReverseControls:
		for _, paddle := range b.paddles {
			paddle.SetReverseControls(true)
		}
	}
	p.activate(b.scene.ElapsedTime())
}

func (b *Board) removePowerup(p *Powerup) {
	switch p.Type {
	case IncreasePaddleSpeed:
		b.scalePaddleSpeed(0.5)
	case DecreasePaddleSpeed:
		b.scalePaddleSpeed(2)
	case SuperSpeed:
		b.scene.SetTimeScale(1)
	case ReverseControls:
		for _, paddle := range b.paddles {
			paddle.SetReverseControls(false)
		}
	}
}

func (b *Board) scalePaddleSpeed(f float64) {
	for _, paddle := range b.paddles {
		paddle.SetSpeed(paddle.Speed() * f)
	}
}

// resizeBall scales the radius and gives the ball the inverse mass of a disc of
// unit density.
func (b *Board) resizeBall(ball *Ball, f float64) {
	ball.Circle.Radius *= f
	r := ball.Circle.Radius
	ball.Body.SetInverseMass(1 / (math.Pi * r * r))
}

// expirePowerups drops collected power-ups whose effect is over.
func (b *Board) expirePowerups() {
	now := b.scene.ElapsedTime()
	b.powerups = slices.DeleteFunc(b.powerups, func(p *Powerup) bool {
		if !p.Taken() || p.Active(now) {
			return false
		}
		b.scene.RemoveBody(p.Body)
		b.removePowerup(p)
		b.logger.Debug("powerup expired", zap.Stringer("type", p.Type))
		return true
	})
}

// HandleKey sets the key state on every paddle, as for players sharing one keyboard.
func (b *Board) HandleKey(key string, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.paddles {
		p.PressKey(key, pressed)
	}
}

// HandlePlayerKey sets the key state on the paddles of playerID. It returns false
// when the player has no paddle or the key is unknown.
func (b *Board) HandlePlayerKey(playerID int, key string, pressed bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	found := false
	for _, p := range b.paddles {
		if p.PlayerID == playerID && p.PressKey(key, pressed) {
			found = true
		}
	}
	return found
}

// RemovePlayer removes the paddles of playerID and turns its goals into neutral walls.
func (b *Board) RemovePlayer(playerID int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.paddles = slices.DeleteFunc(b.paddles, func(p *sweep.Paddle) bool {
		if p.PlayerID != playerID {
			return false
		}
		b.scene.RemoveBody(p.Body)
		return true
	})

	for i, w := range b.walls {
		if w.PlayerID != playerID {
			continue
		}
		b.scene.RemoveBody(w.Body)
		body := sweep.NewSegmentBody(w.Segment.A, w.Segment.B, vec.Vec2{})
		seg, _ := body.ShapeAtIndex(0).Segment()
		neutral := &Wall{Body: body, Segment: seg, PlayerID: NoPlayer}
		body.Kind = KindWall
		body.UserData = neutral
		b.walls[i] = neutral
		b.scene.AddBody(body)
	}
	b.logger.Info("player removed", zap.Int("player", playerID))
}

// Players returns the players the board was built for.
func (b *Board) Players() []int {
	return slices.Clone(b.players)
}

// Scores returns the points every player gained: each goal a player concedes gives
// one point to every other player still on the board.
func (b *Board) Scores() map[int]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scores()
}

func (b *Board) scores() map[int]int {
	var ids []int
	for _, p := range b.paddles {
		if !slices.Contains(ids, p.PlayerID) {
			ids = append(ids, p.PlayerID)
		}
	}

	out := make(map[int]int)
	for _, base := range ids {
		conceded := b.score[base]
		if conceded >= 0 {
			continue
		}
		for _, id := range ids {
			if id != base {
				out[id] += -conceded
			}
		}
	}
	return out
}

// Conceded returns the raw score of playerID: minus the goals it conceded.
func (b *Board) Conceded(playerID int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.score[playerID]
}

// ElapsedTime returns the simulated time of the board.
func (b *Board) ElapsedTime() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scene.ElapsedTime()
}

// Digest returns a hash of the scene state and the raw scores.
func (b *Board) Digest() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], b.scene.Digest())
	_, _ = d.Write(buf[:])

	ids := make([]int, 0, len(b.score))
	for id := range b.score {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(id)))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(b.score[id])))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
