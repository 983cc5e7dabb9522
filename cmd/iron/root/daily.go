package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bleathingman/iron-system/internal/ui"
)

func newDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show today's pool and elite objective",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			pool, err := svc.LoadDailyObjectives(ctx)
			if err != nil {
				return err
			}
			elite, err := svc.LoadEliteDaily(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			today := svc.Today()
			fmt.Fprintln(out, ui.Heading(ui.IconCalDay, "Daily pool "+today.Format("2006-01-02")))
			if len(pool) == 0 {
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Pool cleared"))
			}
			for _, o := range pool {
				fmt.Fprintln(out, objectiveLine(o, today))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconCrown+" Elite"))
			if elite == nil {
				fmt.Fprintln(out, ui.Muted.Render("No elite objective on offer today."))
			} else {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeElite, objectiveLine(elite.Objective, today))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintf(out, "%s %s\n", ui.IconGift, ui.Muted.Render(fmt.Sprintf("Clear the pool for a +%d XP bonus.", svc.Policy().DailyBonusXP)))
			return nil
		},
	}

	return cmd
}
