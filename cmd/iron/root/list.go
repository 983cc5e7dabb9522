package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/storage"
	"github.com/bleathingman/iron-system/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the objectives unlocked at your level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.LoadStats(ctx)
			if err != nil {
				return err
			}
			level := engine.LevelForTotalXP(st.TotalExp)
			list, err := svc.LoadObjectivesForLevel(ctx, level)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalDay, fmt.Sprintf("Objectives (level %d)", level)))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No objectives yet."))
				return nil
			}
			today := svc.Today()
			for _, o := range list {
				fmt.Fprintln(out, objectiveLine(o, today))
			}
			return nil
		},
	}

	return cmd
}

func objectiveLine(o storage.Objective, today time.Time) string {
	mark := ui.Muted.Render("[ ]")
	if !engine.IsOpen(o, today) {
		mark = ui.Good.Render("[x]")
	}
	return fmt.Sprintf("%s %s %s %s %s %s",
		mark,
		ui.CategoryIcon(o.Category),
		o.Title,
		ui.Muted.Render(o.ID),
		ui.Gold.Render(fmt.Sprintf("+%d", o.Value)),
		ui.FrequencyText(o.Frequency),
	)
}
