package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/storage"
	"github.com/bleathingman/iron-system/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, streaks and rep counters",
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
			out := cmd.OutOrStdout()
			level := engine.LevelForTotalXP(st.TotalExp)
			nextReq := engine.XPRequiredForLevel(level + 1)

			fmt.Fprintln(out, ui.Heading(ui.IconIron, "Iron System"))
			fmt.Fprintln(out, ui.LabelValue("Level", level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%s %d/%d %s",
				ui.Bar(engine.XPInLevel(st.TotalExp), 20),
				engine.XPInLevel(st.TotalExp), engine.XPPerLevel,
				ui.Muted.Render(fmt.Sprintf("(total %d, next level at %d)", st.TotalExp, nextReq)))))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%s %d%%", ui.Bar(svc.DailyProgress(st), 20), svc.DailyProgress(st))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconFire+" Streaks"))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Current:"), ui.Streak(st.CurrentStreak))
			fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Best:"), ui.Streak(st.BestStreak))
			fmt.Fprintf(out, "- %s %d %s\n", ui.Key.Render("Combo:"), comboToday(svc, st), ui.Muted.Render("validations today"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Validations:"), st.TotalValidations)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("💪 Reps"))
			for _, ex := range engine.Exercises {
				fmt.Fprintf(out, "- %s %d\n", ui.Key.Render(string(ex)+":"), engine.Reps(*st, ex))
			}
			return nil
		},
	}

	return cmd
}

// comboToday hides a combo left over from an earlier day.
func comboToday(svc *engine.Service, st *storage.Stats) int {
	if st.LastValidationDate == nil || !st.LastValidationDate.Equal(svc.Today()) {
		return 0
	}
	return st.ComboValidations
}
