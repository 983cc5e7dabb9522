package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <objective_id>",
		Short: "Validate an objective",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("objective_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Complete(ctx, args[0])
			if err != nil {
				return err
			}
			printCompleteResult(cmd, res)
			return nil
		},
	}

	return cmd
}

func printCompleteResult(cmd *cobra.Command, res *engine.CompleteResult) {
	out := cmd.OutOrStdout()
	if !res.Validated {
		fmt.Fprintf(out, "%s %s\n", ui.Warn.Render(ui.IconWarn+" Already done"), ui.Muted.Render(res.ObjectiveID+" is closed for this period"))
		return
	}

	fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Validated"), res.ObjectiveID, ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
	if res.EliteCompleted {
		fmt.Fprintf(out, "%s %s\n", ui.BadgeElite, ui.Muted.Render("elite objective cleared"))
	}
	if res.BonusGranted {
		fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconGift+" Daily pool cleared"), ui.Gold.Render(fmt.Sprintf("+%d XP", res.BonusXP)))
	}
	if res.LevelUp {
		fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.Key.Render(fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	}
	fmt.Fprintf(out, "%s %s\n", ui.Key.Render("Streak:"), ui.Streak(res.Stats.CurrentStreak))
	for _, id := range res.Unlocked {
		a := ui.Achievement(id)
		fmt.Fprintf(out, "%s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement unlocked:"), a.Title, ui.RarityBadge(a.Rarity))
	}
}
