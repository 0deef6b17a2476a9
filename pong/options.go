package pong

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/setanarut/sweep"
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("pong: invalid options")

// Options describe a board.
type Options struct {
	CanvasWidth       float64 `json:"canvas_width" yaml:"canvas_width"`
	CanvasHeight      float64 `json:"canvas_height" yaml:"canvas_height"`
	BallSpeed         float64 `json:"ball_speed" yaml:"ball_speed"`
	PaddleSpeedFactor float64 `json:"paddle_speed_factor" yaml:"paddle_speed_factor"`
	// PaddleWidthFactor is the paddle width as a share of its goal length.
	PaddleWidthFactor float64 `json:"paddle_width_factor" yaml:"paddle_width_factor"`
	PaddleHeight      float64 `json:"paddle_height" yaml:"paddle_height"`
	// PaddleWallOffset is the distance between a goal and its paddle center.
	PaddleWallOffset float64 `json:"paddle_wall_offset" yaml:"paddle_wall_offset"`
	AmountOfBalls    int     `json:"amount_of_balls" yaml:"amount_of_balls"`
	// PowerupFrequency is the mean time between power-up spawns. Zero disables them.
	PowerupFrequency float64 `json:"powerup_frequency" yaml:"powerup_frequency"`
	// Seed drives every random choice of the board.
	Seed   uint64       `json:"seed" yaml:"seed"`
	Engine sweep.Config `json:"engine" yaml:"engine"`
}

// DefaultOptions returns the options used when nothing else is given.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:       1000,
		CanvasHeight:      1000,
		BallSpeed:         450,
		PaddleSpeedFactor: 1,
		PaddleWidthFactor: 0.3,
		PaddleHeight:      20,
		PaddleWallOffset:  50,
		AmountOfBalls:     1,
		PowerupFrequency:  15,
		Seed:              1,
		Engine:            sweep.DefaultConfig(),
	}
}

// LoadOptions decodes YAML options. Missing keys keep their default values.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("decode pong options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks the options for values a board cannot be built with.
func (o Options) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"canvas_width", o.CanvasWidth},
		{"canvas_height", o.CanvasHeight},
		{"ball_speed", o.BallSpeed},
		{"paddle_speed_factor", o.PaddleSpeedFactor},
		{"paddle_width_factor", o.PaddleWidthFactor},
		{"paddle_height", o.PaddleHeight},
	}
	for _, p := range positive {
		if !finite(p.value) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidOptions, p.name, p.value)
		}
	}
	if o.PaddleWidthFactor >= 1 {
		return fmt.Errorf("%w: paddle_width_factor must be < 1, got %v", ErrInvalidOptions, o.PaddleWidthFactor)
	}
	if !finite(o.PaddleWallOffset) || o.PaddleWallOffset < 0 {
		return fmt.Errorf("%w: paddle_wall_offset must be >= 0, got %v", ErrInvalidOptions, o.PaddleWallOffset)
	}
	if o.AmountOfBalls < 1 {
		return fmt.Errorf("%w: amount_of_balls must be >= 1, got %d", ErrInvalidOptions, o.AmountOfBalls)
	}
	if !finite(o.PowerupFrequency) || o.PowerupFrequency < 0 {
		return fmt.Errorf("%w: powerup_frequency must be >= 0, got %v", ErrInvalidOptions, o.PowerupFrequency)
	}
	if err := o.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: engine: %w", ErrInvalidOptions, err)
	}
	return nil
}
