package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vklychkov/gemduel/internal/content"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List playable classes",
	Long:  `Shows every registered class with its skills and costs.`,
	Run:   runClasses,
}

func runClasses(_ *cobra.Command, _ []string) {
	infos := content.ListClasses()

	if len(infos) == 0 {
		fmt.Println("No classes available.")
		return
	}

	fmt.Println("Playable classes:")
	fmt.Println()

	for _, info := range infos {
		class, err := content.ClassByID(info.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %s (%s) — %d hp\n", class.Name, class.ID, class.MaxHealth)
		fmt.Printf("    %s\n", class.Description)
		for _, sk := range class.Skills {
			fmt.Printf("    · %-14s %d %-6s %s\n", sk.Name, sk.Cost.Amount, sk.Cost.Color, sk.Description)
		}
		fmt.Println()
	}

	fmt.Println("Run 'gemduel play --class <id>' to start with a class.")
}
