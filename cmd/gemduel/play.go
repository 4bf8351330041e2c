package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vklychkov/gemduel/internal/config"
	"github.com/vklychkov/gemduel/internal/platform/tui"
	"github.com/vklychkov/gemduel/internal/storage"
)

var (
	flagClass      string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run against the AI",
	Long: `Start a run: a sequence of battles against AI opponents.

Controls:
  Arrows/hjkl  - Move cursor
  Enter/Space  - Select tile / swap / cast targeted skill
  1-3          - Toggle skills
  B            - Open blessing shop
  F            - Forge collected blessings into a relic
  Esc          - Cancel targeting or selection
  Q/Ctrl+C     - Quit

Difficulty presets adjust how often the AI prefers skills over swaps:
  easy, normal, hard

Examples:
  gemduel play
  gemduel play --class shadowblade
  gemduel play --seed 42 --difficulty hard
  gemduel play --config ./my-balance.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagClass, "class", "", "Skip the class picker and start with this class")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func loadBalance() config.Balance {
	balance, err := config.LoadBalance(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&balance, config.DifficultyPreset(flagDifficulty))
	}
	return balance
}

// minWidth/minHeight fit the board, both player panels and the help bar.
const (
	minWidth  = 60
	minHeight = 22
)

func runPlay(_ *cobra.Command, _ []string) {
	balance := loadBalance()

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < minWidth || h < minHeight {
			fmt.Fprintf(os.Stderr, "Terminal too small: %dx%d (need at least %dx%d)\n", w, h, minWidth, minHeight)
			os.Exit(1)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the duel still works
		store = nil
	}

	cfg := tui.Config{
		Store:   store,
		Balance: balance,
		Seed:    seed,
	}

	var runErr error
	if flagClass != "" {
		runErr = tui.RunDuel(cfg, flagClass)
	} else {
		runErr = tui.Run(cfg)
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
