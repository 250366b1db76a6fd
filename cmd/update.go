package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/penwyp/vendsync/internal/config"
	"github.com/penwyp/vendsync/internal/planner"
	"github.com/penwyp/vendsync/internal/report"
	"github.com/penwyp/vendsync/internal/updater"
)

var (
	flagCustomVersion string
	flagRefresh       bool
)

var updateCmd = &cobra.Command{
	Use:   "update <project-path>...",
	Short: "Update projects to their next upstream version",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagCustomVersion != "" && len(args) != 1 {
			return fmt.Errorf("--custom-version applies to exactly one project")
		}

		roster := config.NewRoster(appConfig.Reviewers, rand.New(rand.NewSource(rand.Int63())))

		rep := runBatch(cmd.Context(), args, func(ctx context.Context, u updater.Updater, res *report.ProjectResult) error {
			checked, err := u.Check(ctx)
			if err != nil {
				return err
			}

			if flagCustomVersion != "" {
				gitUpdater, ok := u.(*updater.GitUpdater)
				if !ok {
					return fmt.Errorf("--custom-version requires a git-tracked project")
				}
				if err := gitUpdater.SetCustomVersion(ctx, flagCustomVersion); err != nil {
					return err
				}
				checked.Decision.Outcome = planner.OutcomeFound
				checked.Decision.NextVersion = flagCustomVersion
			} else if flagRefresh {
				if checked, err = u.Refresh(ctx); err != nil {
					return err
				}
			}
			fillFromCheck(res, checked)

			applied, err := u.Apply(ctx)
			if err != nil {
				return err
			}
			switch {
			case applied.Conflicted:
				res.Status = report.StatusConflicted
			case checked.Decision.Outcome == planner.OutcomeUpToDate:
				res.Status = report.StatusUpToDate
			default:
				res.Status = report.StatusUpdated
				res.Latest = applied.NewVersion
				res.Reviewer = roster.Next()
			}
			return nil
		})
		rep.Render(cmd.OutOrStdout())
		return finishBatch(rep)
	},
}

func init() {
	updateCmd.Flags().StringVar(&flagCustomVersion, "custom-version", "",
		"update to this exact version instead of the planned one (must be newer than the current version)")
	updateCmd.Flags().BoolVar(&flagRefresh, "refresh", false,
		"re-apply the current version without upgrading")
}
