package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show loyalty achievements and which ones you have unlocked",
	RunE:  runAchievements,
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

func runAchievements(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	catalog, err := a.api.Achievements(ctx)
	if err != nil {
		return reportErr(err)
	}

	// The unlocked list needs a session; anonymous users still see the
	// catalog.
	unlocked := map[int]bool{}
	used := map[int]bool{}
	if token := a.session.Token(); token != "" {
		mine, err := a.api.UnlockedAchievements(ctx, token)
		if err != nil {
			a.logger.Debug("failed to load unlocked achievements", "error", err)
		}
		for _, u := range mine {
			unlocked[u.ID] = true
			used[u.ID] = u.BonusUsed
		}
	}

	if len(catalog) == 0 {
		fmt.Println("No achievements yet")
		return nil
	}
	for _, ach := range catalog {
		mark := "🔒"
		note := ""
		if unlocked[ach.ID] {
			mark = "🏆"
			if used[ach.ID] {
				note = "  (bonus used)"
			}
		}
		fmt.Printf("%s %s — %s%s\n", mark, ach.Title, ach.Description, note)
		if ach.Reward != "" {
			fmt.Printf("     Reward: %s\n", ach.Reward)
		}
	}
	return nil
}
