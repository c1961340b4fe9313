package fruitdrop

import (
	"fmt"

	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
	"github.com/vovakirdan/fruitdrop/internal/physics"
)

// pieceStyle is how one rank is drawn.
type pieceStyle struct {
	Glyph rune
	Color core.Color
}

// setup is everything derived from a config for one mode.
type setup struct {
	table     rules.Table
	settings  rules.Settings
	physics   physics.Settings
	container physics.Container
	nudge     float64
	styles    []pieceStyle
	sponsor   int // seconds
}

// buildSetup converts a config into rules, physics and drawing settings.
func buildSetup(cfg config.FruitDropConfig, mode Mode) (setup, error) {
	if err := cfg.Validate(); err != nil {
		return setup{}, err
	}

	ranks := make([]rules.Rank, len(cfg.Ranks))
	styles := make([]pieceStyle, len(cfg.Ranks))
	for i, rc := range cfg.Ranks {
		ranks[i] = rules.Rank{Radius: rc.Radius, Score: rc.Score, Name: rc.Name}
		styles[i] = styleOf(rc)
	}

	table, err := rules.NewTable(ranks, len(cfg.Spawn.Weights))
	if err != nil {
		return setup{}, fmt.Errorf("fruitdrop: %w", err)
	}

	terminal := rules.TerminalAnnihilate
	if cfg.Merge.Terminal == config.TerminalKeep {
		terminal = rules.TerminalKeep
	}

	continues := cfg.Recovery.MaxContinues
	if mode.Hardcore {
		continues = 0
	}

	settings := rules.Settings{
		Width:           cfg.Container.Width,
		Height:          cfg.Container.Height,
		WallThickness:   cfg.Container.Wall,
		DropY:           cfg.Drop.Height,
		DropCooldownMs:  float64(cfg.Drop.CooldownMs),
		DangerY:         cfg.Loss.DangerY,
		DangerMargin:    cfg.Loss.WarnMargin,
		GraceMs:         float64(cfg.Loss.GraceMs),
		SettleSpeed:     cfg.Loss.SettleSpeed,
		ComboWindowMs:   float64(cfg.Combo.WindowMs),
		PopVelocity:     cfg.Merge.PopVelocity,
		HeavyHapticRank: cfg.Merge.HeavyHapticRank,
		MaxContinues:    continues,
		RecoveryClear:   cfg.Recovery.ClearCount,
		SpawnWeights:    append([]int(nil), cfg.Spawn.Weights...),
		Terminal:        terminal,
		Fruit: rules.BodyProps{
			Restitution: cfg.Physics.Restitution,
			Friction:    cfg.Physics.Friction,
			AirFriction: cfg.Physics.AirFriction,
			Density:     cfg.Physics.Density,
		},
	}
	if err := settings.Validate(table); err != nil {
		return setup{}, fmt.Errorf("fruitdrop: %w", err)
	}

	ps := physics.DefaultSettings()
	ps.Gravity = cfg.Physics.Gravity
	ps.Iterations = cfg.Physics.Iterations
	ps.WallRestitution = cfg.Physics.WallRestitution
	ps.WallFriction = cfg.Physics.WallFriction

	nudge := cfg.Drop.Nudge
	if nudge <= 0 {
		nudge = 10
	}

	return setup{
		table:    table,
		settings: settings,
		physics:  ps,
		container: physics.Container{
			Width:  cfg.Container.Width,
			Height: cfg.Container.Height,
			Wall:   cfg.Container.Wall,
		},
		nudge:   nudge,
		styles:  styles,
		sponsor: cfg.Recovery.SponsorSeconds,
	}, nil
}

func styleOf(rc config.RankConfig) pieceStyle {
	glyph := '●'
	for _, r := range rc.Glyph {
		glyph = r
		break
	}
	c, _ := core.ParseColor(rc.Color)
	return pieceStyle{Glyph: glyph, Color: c}
}

// style returns the drawing style of a rank.
func (s setup) style(rank int) pieceStyle {
	if rank < 0 || rank >= len(s.styles) {
		return pieceStyle{Glyph: '●', Color: core.ColorDefault}
	}
	return s.styles[rank]
}
