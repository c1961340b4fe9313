package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

// Validate reports the first inconsistency in cfg.
func (cfg FruitDropConfig) Validate() error {
	c := cfg.Container
	if c.Width <= 0 || c.Height <= 0 || c.Wall < 0 {
		return errors.New("config: container: dimensions must be positive")
	}

	if len(cfg.Ranks) < 2 {
		return fmt.Errorf("config: ranks: need at least 2, got %d", len(cfg.Ranks))
	}
	for i, r := range cfg.Ranks {
		if r.Radius <= 0 {
			return fmt.Errorf("config: ranks[%d] %s: radius must be positive", i, r.Name)
		}
		if r.Score <= 0 {
			return fmt.Errorf("config: ranks[%d] %s: score must be positive", i, r.Name)
		}
		if i > 0 && r.Radius <= cfg.Ranks[i-1].Radius {
			return fmt.Errorf("config: ranks: radius must increase (%s %.0f <= %s %.0f)",
				r.Name, r.Radius, cfg.Ranks[i-1].Name, cfg.Ranks[i-1].Radius)
		}
		if r.Color != "" {
			if _, ok := core.ParseColor(r.Color); !ok {
				return fmt.Errorf("config: ranks[%d] %s: unknown color %q", i, r.Name, r.Color)
			}
		}
	}

	w := cfg.Spawn.Weights
	if len(w) == 0 || len(w) >= len(cfg.Ranks) {
		return fmt.Errorf("config: spawn: need between 1 and %d weights, got %d", len(cfg.Ranks)-1, len(w))
	}
	for i, v := range w {
		if v <= 0 {
			return fmt.Errorf("config: spawn: weight %d must be positive", i)
		}
		if i > 0 && v >= w[i-1] {
			return fmt.Errorf("config: spawn: weights must be strictly decreasing (%d >= %d)", v, w[i-1])
		}
	}

	largest := cfg.Ranks[len(w)-1].Radius
	if c.Width-2*c.Wall-2 < 2*largest {
		return fmt.Errorf("config: container: width %.0f too narrow for %s", c.Width, cfg.Ranks[len(w)-1].Name)
	}

	if cfg.Drop.CooldownMs < 0 || cfg.Loss.GraceMs < 0 {
		return errors.New("config: durations must not be negative")
	}
	if cfg.Combo.WindowMs <= 0 {
		return errors.New("config: combo: window_ms must be positive")
	}
	if cfg.Loss.DangerY <= cfg.Drop.Height || cfg.Loss.DangerY >= c.Height-c.Wall {
		return fmt.Errorf("config: loss: danger_y %.0f must lie between the drop height and the floor", cfg.Loss.DangerY)
	}
	if cfg.Loss.SettleSpeed <= 0 {
		return errors.New("config: loss: settle_speed must be positive")
	}

	switch cfg.Merge.Terminal {
	case "", TerminalAnnihilate, TerminalKeep:
	default:
		return fmt.Errorf("config: merge: terminal must be %q or %q, got %q",
			TerminalAnnihilate, TerminalKeep, cfg.Merge.Terminal)
	}

	if cfg.Recovery.MaxContinues < 0 || cfg.Recovery.ClearCount < 0 {
		return errors.New("config: recovery: counts must not be negative")
	}
	if cfg.Physics.Iterations <= 0 {
		return errors.New("config: physics: iterations must be positive")
	}
	return nil
}
