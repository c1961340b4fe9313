package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitdrop/internal/audio"
	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/logging"
	"github.com/vovakirdan/fruitdrop/internal/platform/tui"
	"github.com/vovakirdan/fruitdrop/internal/registry"
	"github.com/vovakirdan/fruitdrop/internal/spectate"

	// Import the game to register its modes
	_ "github.com/vovakirdan/fruitdrop/internal/games/fruitdrop"
)

var (
	flagSound    bool
	flagSpectate string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Start playing. Without a mode a menu lets you pick the mode and the
difficulty, and open the scoreboard.

Controls:
  Left/Right/Mouse - Aim
  Space/Down/Click - Drop
  P                - Pause
  C                - Continue after game over (sponsor break)
  R                - Restart
  M                - Mute
  Esc              - Pause, then back
  Q/Ctrl+C         - Quit

Modes:
  fruitdrop           - Classic, continues allowed
  fruitdrop_hardcore  - No continues

Examples:
  fruitdrop play
  fruitdrop play fruitdrop --difficulty easy
  fruitdrop play --config ./my-fruitdrop.yaml
  fruitdrop play --sound
  fruitdrop play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'fruitdrop scores' to see the available modes.")
		os.Exit(1)
	}

	logger, closer, err := logging.New(logging.Options{
		File:   flagLogPath,
		Level:  flagLogLevel,
		Prefix: "fruitdrop",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	player := startAudio(logger)
	if player != nil {
		defer player.Close()
	}

	hub, stop := startSpectate(logger)
	defer stop()

	rt := runtimeConfig()

	if len(args) == 0 {
		err = tui.RunSession(tui.SessionOptions{
			Store:   store,
			Runtime: rt,
			Game:    cfg,
			Preset:  preset,
			Logger:  logger,
			Bell:    os.Stdout,
			Audio:   player,
			Hub:     hub,
		})
	} else {
		err = playMode(args[0], tui.Options{
			Store:   store,
			Runtime: rt,
			Logger:  logger,
			Audio:   player,
			Hub:     hub,
			Bell:    os.Stdout,
		}, withPreset(cfg, preset))
	}

	if err != nil {
		logger.Error("play failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playMode runs a single mode until the player quits.
func playMode(id string, opts tui.Options, cfg config.FruitDropConfig) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	opts.Config = &cfg
	return tui.Run(game, opts)
}

// startAudio opens the speaker when --sound is set. A missing sound device
// leaves the game silent.
func startAudio(logger *log.Logger) *audio.Player {
	if !flagSound {
		return nil
	}
	player := audio.NewPlayer()
	if err := player.Initialize(); err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	return player
}

// startSpectate serves the spectator feed when --spectate is set. The
// returned stop func is always safe to call.
func startSpectate(logger *log.Logger) (*spectate.Hub, func()) {
	if flagSpectate == "" {
		return nil, func() {}
	}

	hub := spectate.NewHub(spectate.DefaultRate, logger)
	srv, err := spectate.Listen(flagSpectate, hub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: spectator feed disabled: %v\n", err)
		logger.Warn("spectator feed disabled", "error", err)
		return nil, func() {}
	}
	fmt.Printf("Spectators: ws://%s/ws\n", srv.Addr())

	return hub, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		srv.Shutdown(ctx)
	}
}
