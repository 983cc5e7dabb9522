package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bleathingman/iron-system/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFilter(filter)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Catch up on unlocks earned before this binary knew about them.
			st, err := svc.LoadStats(ctx)
			if err != nil {
				return err
			}
			if _, err := svc.EvaluateAchievements(ctx, *st); err != nil {
				return err
			}

			list, err := svc.ListAchievements(ctx)
			if err != nil {
				return err
			}
			unlocked := 0
			for _, a := range list {
				if a.Unlocked {
					unlocked++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", unlocked, len(list))))
			for _, a := range list {
				if !f.Keep(a.Secret, a.Unlocked) {
					continue
				}
				fmt.Fprintln(out, ui.AchievementCard(a.ID, a.Secret, a.Unlocked))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter (all|unlocked|locked|secrets)")

	return cmd
}
