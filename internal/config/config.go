// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for fruitdrop.
package config

// FruitDropConfig contains all configuration for the merge game.
type FruitDropConfig struct {
	Container ContainerConfig `yaml:"container"`
	Drop      DropConfig      `yaml:"drop"`
	Loss      LossConfig      `yaml:"loss"`
	Combo     ComboConfig     `yaml:"combo"`
	Merge     MergeConfig     `yaml:"merge"`
	Recovery  RecoveryConfig  `yaml:"recovery"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Ranks     []RankConfig    `yaml:"ranks"`
}

// ContainerConfig defines the playfield in world units.
type ContainerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Wall   float64 `yaml:"wall"`
}

// DropConfig defines drop admission.
type DropConfig struct {
	Height     float64 `yaml:"height"`      // y at which pieces enter
	CooldownMs int     `yaml:"cooldown_ms"` // delay before the next drop
	Nudge      float64 `yaml:"nudge"`       // keyboard step in world units
}

// LossConfig defines the overflow rule.
type LossConfig struct {
	DangerY     float64 `yaml:"danger_y"`
	WarnMargin  float64 `yaml:"warn_margin"`
	GraceMs     int     `yaml:"grace_ms"`
	SettleSpeed float64 `yaml:"settle_speed"`
}

// ComboConfig defines the combo window.
type ComboConfig struct {
	WindowMs int `yaml:"window_ms"`
}

// MergeConfig defines merge side effects.
type MergeConfig struct {
	PopVelocity     float64 `yaml:"pop_velocity"`
	HeavyHapticRank int     `yaml:"heavy_haptic_rank"`
	Terminal        string  `yaml:"terminal"` // "annihilate" or "keep"
}

// RecoveryConfig defines the continue budget.
type RecoveryConfig struct {
	MaxContinues   int `yaml:"max_continues"`
	ClearCount     int `yaml:"clear_count"`
	SponsorSeconds int `yaml:"sponsor_seconds"`
}

// PhysicsConfig defines the rigid-body tuning. Velocities are per tick.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	Iterations      int     `yaml:"iterations"`
	AirFriction     float64 `yaml:"air_friction"`
	Restitution     float64 `yaml:"restitution"`
	Friction        float64 `yaml:"friction"`
	Density         float64 `yaml:"density"`
	WallRestitution float64 `yaml:"wall_restitution"`
	WallFriction    float64 `yaml:"wall_friction"`
}

// SpawnConfig defines the weighted draw over the lowest ranks. The number of
// weights is the number of droppable ranks.
type SpawnConfig struct {
	Weights []int `yaml:"weights"`
}

// RankConfig defines one merge tier and how it is drawn.
type RankConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Score  int     `yaml:"score"`
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
}

// Terminal merge modes.
const (
	TerminalAnnihilate = "annihilate"
	TerminalKeep       = "keep"
)
