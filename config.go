package sweep

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("sweep: invalid config")

// Broadphase index kinds accepted by BroadphaseConfig.Index.
const (
	IndexQuadtree = "quadtree"
	IndexBBTree   = "bbtree"
)

// BroadphaseConfig tunes the spatial index used to find candidate pairs.
type BroadphaseConfig struct {
	// Enabled selects the spatial index. When false every pair is tested.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Index is IndexQuadtree or IndexBBTree. Empty means IndexQuadtree.
	Index string `json:"index" yaml:"index"`
	// Padding is added around the union of all swept boxes to form the tree region.
	Padding float64 `json:"padding" yaml:"padding"`
	// Lookahead is the minimum time boxes are swept over. The scene always sweeps at
	// least over the remaining time of the tick.
	Lookahead float64 `json:"lookahead" yaml:"lookahead"`
	MaxItems  int     `json:"max_items" yaml:"max_items"`
	MaxDepth  int     `json:"max_depth" yaml:"max_depth"`
	// Verify runs the all-pairs enumeration next to the index on every sub-step
	// and reports any difference. Meant for tests and debugging.
	Verify bool `json:"verify" yaml:"verify"`
}

// Config holds the tuning of a Scene.
type Config struct {
	TimeScale     float64          `json:"time_scale" yaml:"time_scale"`
	MaxIterations int              `json:"max_iterations" yaml:"max_iterations"`
	Broadphase    BroadphaseConfig `json:"broadphase" yaml:"broadphase"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		TimeScale:     1,
		MaxIterations: DefaultMaxIterations,
		Broadphase: BroadphaseConfig{
			Enabled:   true,
			Index:     IndexQuadtree,
			Padding:   DefaultBroadphasePadding,
			Lookahead: DefaultLookahead,
			MaxItems:  DefaultQuadtreeMaxItems,
			MaxDepth:  DefaultQuadtreeMaxDepth,
		},
	}
}

// LoadConfig decodes a YAML config. Missing keys keep their default values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode sweep config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for values the scene cannot run with.
func (c Config) Validate() error {
	switch {
	case !isFinite(c.TimeScale) || c.TimeScale <= 0:
		return fmt.Errorf("%w: time_scale must be a positive number, got %v", ErrInvalidConfig, c.TimeScale)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	case !isFinite(c.Broadphase.Padding) || c.Broadphase.Padding < 0:
		return fmt.Errorf("%w: broadphase.padding must be >= 0, got %v", ErrInvalidConfig, c.Broadphase.Padding)
	case !isFinite(c.Broadphase.Lookahead) || c.Broadphase.Lookahead < 0:
		return fmt.Errorf("%w: broadphase.lookahead must be >= 0, got %v", ErrInvalidConfig, c.Broadphase.Lookahead)
	case c.Broadphase.MaxItems < 1:
		return fmt.Errorf("%w: broadphase.max_items must be >= 1, got %d", ErrInvalidConfig, c.Broadphase.MaxItems)
	case c.Broadphase.MaxDepth < 0:
		return fmt.Errorf("%w: broadphase.max_depth must be >= 0, got %d", ErrInvalidConfig, c.Broadphase.MaxDepth)
	case c.Broadphase.Index != "" && c.Broadphase.Index != IndexQuadtree && c.Broadphase.Index != IndexBBTree:
		return fmt.Errorf("%w: unknown broadphase.index %q", ErrInvalidConfig, c.Broadphase.Index)
	}
	return nil
}

// sanitize replaces unusable values with defaults.
func (c Config) sanitize() Config {
	def := DefaultConfig()
	if !isFinite(c.TimeScale) || c.TimeScale <= 0 {
		c.TimeScale = def.TimeScale
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = def.MaxIterations
	}
	if !isFinite(c.Broadphase.Padding) || c.Broadphase.Padding < 0 {
		c.Broadphase.Padding = def.Broadphase.Padding
	}
	c.Broadphase.Padding = math.Max(c.Broadphase.Padding, FatEPS)
	if !isFinite(c.Broadphase.Lookahead) || c.Broadphase.Lookahead < 0 {
		c.Broadphase.Lookahead = def.Broadphase.Lookahead
	}
	if c.Broadphase.MaxItems < 1 {
		c.Broadphase.MaxItems = def.Broadphase.MaxItems
	}
	if c.Broadphase.MaxDepth < 0 {
		c.Broadphase.MaxDepth = def.Broadphase.MaxDepth
	}
	if c.Broadphase.Index != IndexBBTree {
		c.Broadphase.Index = IndexQuadtree
	}
	return c
}
