package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultFruitDropConfig().Validate(); err != nil {
		t.Fatalf("DefaultFruitDropConfig().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultFruitDropYAML)
	if err != nil {
		t.Fatalf("parse(embedded) = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFruitDropConfig()) {
		t.Errorf("embedded YAML = %+v\nexpected %+v", cfg, DefaultFruitDropConfig())
	}
}

func TestLoadFruitDropEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadFruitDrop("")
	if err != nil {
		t.Fatalf("LoadFruitDrop() = %v", err)
	}
	if len(cfg.Ranks) != 10 || cfg.Ranks[9].Name != "Watermelon" {
		t.Errorf("Ranks = %+v, expected the default table", cfg.Ranks)
	}
}

func TestLoadFruitDropUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".fruitdrop", "configs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fruitdrop.yaml"), []byte("combo:\n  window_ms: 900\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFruitDrop("")
	if err != nil {
		t.Fatalf("LoadFruitDrop() = %v", err)
	}
	if cfg.Combo.WindowMs != 900 {
		t.Errorf("Combo.WindowMs = %d, expected 900 from the user file", cfg.Combo.WindowMs)
	}
}

func TestLoadFruitDropCustomPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(*testing.T, FruitDropConfig)
	}{
		{
			name:    "partial override",
			content: "recovery:\n  max_continues: 0\nmerge:\n  terminal: keep\n",
			check: func(t *testing.T, cfg FruitDropConfig) {
				if cfg.Recovery.MaxContinues != 0 {
					t.Errorf("MaxContinues = %d, expected 0", cfg.Recovery.MaxContinues)
				}
				if cfg.Merge.Terminal != TerminalKeep {
					t.Errorf("Terminal = %q, expected keep", cfg.Merge.Terminal)
				}
				if cfg.Drop.CooldownMs != 450 || len(cfg.Ranks) != 10 {
					t.Error("unset keys lost their defaults")
				}
			},
		},
		{
			name: "custom ranks",
			content: `ranks:
  - { name: Pea, radius: 10, score: 1 }
  - { name: Bean, radius: 20, score: 2 }
  - { name: Pod, radius: 30, score: 4 }
spawn:
  weights: [3, 1]
`,
			check: func(t *testing.T, cfg FruitDropConfig) {
				if len(cfg.Ranks) != 3 || cfg.Ranks[2].Name != "Pod" {
					t.Errorf("Ranks = %+v, expected 3 custom ranks", cfg.Ranks)
				}
			},
		},
		{
			name:    "increasing weights",
			content: "spawn:\n  weights: [1, 2, 3]\n",
			wantErr: true,
		},
		{
			name:    "bad terminal",
			content: "merge:\n  terminal: explode\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "container: [",
			wantErr: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "cfg"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFruitDrop(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFruitDrop() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadFruitDropMissingFile(t *testing.T) {
	if _, err := LoadFruitDrop(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFruitDrop() with a missing custom path expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FruitDropConfig)
	}{
		{"one rank", func(c *FruitDropConfig) { c.Ranks = c.Ranks[:1] }},
		{"radius decreasing", func(c *FruitDropConfig) { c.Ranks[3].Radius = 20 }},
		{"zero score", func(c *FruitDropConfig) { c.Ranks[0].Score = 0 }},
		{"unknown color", func(c *FruitDropConfig) { c.Ranks[0].Color = "chartreuse" }},
		{"all ranks droppable", func(c *FruitDropConfig) {
			c.Spawn.Weights = []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
		}},
		{"narrow container", func(c *FruitDropConfig) { c.Container.Width = 90 }},
		{"danger below floor", func(c *FruitDropConfig) { c.Loss.DangerY = 700 }},
		{"zero combo window", func(c *FruitDropConfig) { c.Combo.WindowMs = 0 }},
		{"negative continues", func(c *FruitDropConfig) { c.Recovery.MaxContinues = -1 }},
		{"no iterations", func(c *FruitDropConfig) { c.Physics.Iterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFruitDropConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v, expected normal", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) expected error")
	}

	for _, p := range Presets {
		t.Run(string(p), func(t *testing.T) {
			cfg := DefaultFruitDropConfig()
			ApplyFruitDropPreset(&cfg, p)
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced invalid config: %v", p, err)
			}
		})
	}

	easy, hard := DefaultFruitDropConfig(), DefaultFruitDropConfig()
	ApplyFruitDropPreset(&easy, DifficultyEasy)
	ApplyFruitDropPreset(&hard, DifficultyHard)
	if easy.Recovery.MaxContinues <= hard.Recovery.MaxContinues {
		t.Error("easy should allow more continues than hard")
	}
	if easy.Drop.CooldownMs >= hard.Drop.CooldownMs {
		t.Error("easy should have a shorter cooldown than hard")
	}
}
