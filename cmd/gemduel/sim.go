package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vklychkov/gemduel/internal/engine"
	"github.com/vklychkov/gemduel/internal/player"
	"github.com/vklychkov/gemduel/internal/storage"
)

var (
	flagSimRuns    int
	flagSimClass   string
	flagSimSave    bool
	flagSimVerbose bool
)

// simTurnCap aborts runaway simulations; no sane duel lasts this long.
const simTurnCap = 2000

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless AI-vs-AI battles",
	Long: `Run complete battles without a UI, with both sides driven by the AI
policy. Useful for balance tuning: run a few hundred duels and compare
win rates and run lengths across classes or config changes.

Examples:
  gemduel sim
  gemduel sim -n 100 --class pyromancer
  gemduel sim -n 100 --save --db ./sim.db
  gemduel sim --seed 42 -v`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVarP(&flagSimRuns, "runs", "n", 10, "How many runs to simulate")
	simCmd.Flags().StringVar(&flagSimClass, "class", "", "Class for the simulated player (default: warden)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record simulated battles in the history database")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every battle result")
}

func runSim(_ *cobra.Command, _ []string) {
	balance := loadBalance()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSimSave {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	var (
		runsWon     int
		battlesWon  int
		battlesLost int
		totalTurns  int
	)

	for i := 0; i < flagSimRuns; i++ {
		seed := baseSeed + int64(i)
		battle, err := engine.New(engine.Options{
			Seed:       seed,
			Balance:    balance,
			HumanClass: flagSimClass,
			AutoAck:    true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for {
			turns := simulateBattle(battle, logger)
			totalTurns += turns

			won := battle.Winner() == player.Human
			if won {
				battlesWon++
			} else {
				battlesLost++
			}
			battleNum, maxBattles := battle.BattleCounters()
			logger.Debug("battle finished",
				"run", i+1, "battle", battleNum, "winner", battle.Winner(), "turns", turns)

			if store != nil {
				saveSimBattle(store, battle, seed, turns, logger)
			}

			if !won {
				break
			}
			if battleNum >= maxBattles || !battle.NextBattle() {
				runsWon++
				break
			}
		}
	}

	totalBattles := battlesWon + battlesLost
	fmt.Printf("Runs:        %d (%d completed)\n", flagSimRuns, runsWon)
	fmt.Printf("Battles:     %d (%d won, %d lost)\n", totalBattles, battlesWon, battlesLost)
	if totalBattles > 0 {
		fmt.Printf("Win rate:    %.1f%%\n", 100*float64(battlesWon)/float64(totalBattles))
		fmt.Printf("Avg turns:   %.1f\n", float64(totalTurns)/float64(totalBattles))
	}
}

// simulateBattle drives both sides until the battle ends and returns how
// many turns it took.
func simulateBattle(b *engine.Battle, logger *log.Logger) int {
	for i := 0; i < simTurnCap; i++ {
		if b.Phase() == engine.PhaseGameOver {
			return b.Turn()
		}
		if !b.AutoPlayTurn() {
			logger.Warn("simulation stalled", "turn", b.Turn(), "phase", b.Phase())
			return b.Turn()
		}
	}
	logger.Warn("turn cap reached", "cap", simTurnCap)
	return b.Turn()
}

func saveSimBattle(store *storage.Store, b *engine.Battle, seed int64, turns int, logger *log.Logger) {
	stats := b.Stats()
	battleNum, _ := b.BattleCounters()
	_, err := store.SaveBattle(storage.BattleRecord{
		Seed:            seed,
		ClassID:         b.Player(player.Human).ClassName,
		OpponentClassID: b.Player(player.AI).ClassName,
		BattleNumber:    battleNum,
		Winner:          string(b.Winner()),
		Turns:           turns,
		MaxCombo:        stats.MaxCombo,
		DamageDealt:     stats.DamageDealt,
		DamageTaken:     stats.DamageTaken,
		BlessingsBought: stats.BlessingsBought,
	})
	if err != nil {
		logger.Warn("could not save battle", "error", err)
	}
}
