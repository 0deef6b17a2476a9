package pong

import (
	"github.com/setanarut/vec"
)

// State is a plain numeric snapshot of a board, ready for an external serializer.
type State struct {
	ID          string         `json:"id"`
	ElapsedTime float64        `json:"elapsed_time"`
	Players     []int          `json:"players"`
	Walls       []WallState    `json:"walls"`
	Balls       []BallState    `json:"balls"`
	Paddles     []PaddleState  `json:"paddles"`
	Powerups    []PowerupState `json:"powerups"`
	Scores      map[int]int    `json:"scores"`
}

type WallState struct {
	A        vec.Vec2 `json:"a"`
	B        vec.Vec2 `json:"b"`
	PlayerID int      `json:"player_id"`
}

type BallState struct {
	Center   vec.Vec2 `json:"center"`
	Velocity vec.Vec2 `json:"velocity"`
	Radius   float64  `json:"radius"`
}

type PaddleState struct {
	Center   vec.Vec2 `json:"center"`
	Velocity vec.Vec2 `json:"velocity"`
	Angle    float64  `json:"angle"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	PlayerID int      `json:"player_id"`
}

type PowerupState struct {
	Center    vec.Vec2    `json:"center"`
	Velocity  vec.Vec2    `json:"velocity"`
	Radius    float64     `json:"radius"`
	SpawnTime float64     `json:"spawn_time"`
	Type      PowerupType `json:"type"`
	Duration  float64     `json:"duration"`
	Taken     bool        `json:"taken"`
	// ActivatedAt is only meaningful when Taken is set.
	ActivatedAt float64 `json:"activated_at"`
}

// State returns a snapshot of the board. Balls removed by a goal are not listed
// until they respawn, which happens before Tick returns.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := State{
		ID:          b.ID.String(),
		ElapsedTime: b.scene.ElapsedTime(),
		Players:     append([]int(nil), b.players...),
		Scores:      b.scores(),
	}
	for _, w := range b.walls {
		s.Walls = append(s.Walls, WallState{A: w.Segment.A, B: w.Segment.B, PlayerID: w.PlayerID})
	}
	for _, ball := range b.balls {
		if !b.scene.Contains(ball.Body) {
			continue
		}
		s.Balls = append(s.Balls, BallState{
			Center:   ball.Circle.Center,
			Velocity: ball.Body.Velocity(),
			Radius:   ball.Circle.Radius,
		})
	}
	for _, p := range b.paddles {
		s.Paddles = append(s.Paddles, PaddleState{
			Center:   p.Center(),
			Velocity: p.Velocity(),
			Angle:    p.Angle(),
			Width:    p.Width(),
			Height:   p.Height(),
			PlayerID: p.PlayerID,
		})
	}
	for _, p := range b.powerups {
		s.Powerups = append(s.Powerups, PowerupState{
			Center:      p.Circle.Center,
			Velocity:    p.Body.Velocity(),
			Radius:      p.Circle.Radius,
			SpawnTime:   p.SpawnTime,
			Type:        p.Type,
			Duration:    p.duration,
			Taken:       p.taken,
			ActivatedAt: p.activatedAt,
		})
	}
	return s
}
