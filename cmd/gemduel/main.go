// gemduel is a turn-based match-3 duel played in the terminal.
//
// Usage:
//
//	gemduel play               - Start a run against the AI
//	gemduel classes            - List playable classes
//	gemduel history            - Show recent battle results
//	gemduel sim                - Run headless AI-vs-AI battles
//	gemduel serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible duels (0 = time-based)
//	--db <path>     - Battle history database (default: ~/.gemduel/history.db)
//	--config <path> - Custom balance YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemduel",
	Short: "Gemduel - match-3 combat in your terminal",
	Long: `Gemduel is a terminal match-3 combat game: match gems to gather mana,
spend mana on class skills, and defeat a sequence of AI opponents.

Available commands:
  play      - Start a run
  classes   - List playable classes
  history   - View recent battle results
  sim       - Run headless AI-vs-AI battles
  serve     - Start SSH server for remote play

Examples:
  gemduel play
  gemduel play --class pyromancer --seed 42
  gemduel history
  gemduel sim -n 100
  gemduel serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gemduel/history.db", "Path to battle history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom balance YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}
