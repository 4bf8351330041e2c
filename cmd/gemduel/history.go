package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vklychkov/gemduel/internal/platform/tui"
	"github.com/vklychkov/gemduel/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClass string
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent battle results",
	Long: `Display recent battle results and per-class statistics.

Examples:
  gemduel history
  gemduel history --limit 50
  gemduel history --class pyromancer
  gemduel history --tui
  gemduel history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "How many battles to show")
	historyCmd.Flags().StringVar(&flagHistoryClass, "class", "", "Only show battles played as this class")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse history in an interactive table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded battles")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Battle history cleared.")
		return
	}

	if flagHistoryTUI {
		if err := tui.RunHistory(store, flagHistoryLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var records []storage.BattleRecord
	if flagHistoryClass != "" {
		records, err = store.BattlesForClass(flagHistoryClass, flagHistoryLimit)
	} else {
		records, err = store.RecentBattles(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gemduel play' to record the first one.")
		return
	}

	fmt.Println("Recent battles:")
	fmt.Println()
	fmt.Printf("  %-17s  %-12s  %-12s  %-3s  %-6s  %-5s  %-5s  %-5s  %-5s\n",
		"When", "Class", "Vs", "#", "Winner", "Turns", "Combo", "Dealt", "Taken")
	for _, r := range records {
		fmt.Printf("  %-17s  %-12s  %-12s  %-3d  %-6s  %-5d  %-5d  %-5d  %-5d\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.ClassID, r.OpponentClassID, r.BattleNumber,
			r.Winner, r.Turns, r.MaxCombo, r.DamageDealt, r.DamageTaken)
	}

	stats, err := store.GetAllClassStats()
	if err != nil || len(stats) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Per class:")
	fmt.Println()
	fmt.Printf("  %-12s  %-7s  %-5s  %-10s  %-9s\n", "Class", "Battles", "Wins", "Best combo", "Avg turns")
	for _, s := range stats {
		fmt.Printf("  %-12s  %-7d  %-5d  %-10d  %-9.1f\n",
			s.ClassID, s.Battles, s.Wins, s.BestCombo, s.AvgTurns)
	}
}
