package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/penwyp/vendsync/internal/planner"
	"github.com/penwyp/vendsync/internal/report"
	"github.com/penwyp/vendsync/internal/updater"
)

var checkCmd = &cobra.Command{
	Use:   "check <project-path>...",
	Short: "Check projects for new upstream versions without changing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep := runBatch(cmd.Context(), args, func(ctx context.Context, u updater.Updater, res *report.ProjectResult) error {
			checked, err := u.Check(ctx)
			if err != nil {
				return err
			}
			fillFromCheck(res, checked)
			return nil
		})
		rep.Render(cmd.OutOrStdout())
		return finishBatch(rep)
	},
}

// runBatch resolves and processes each project independently: one project's
// failure is recorded in the report and the rest of the batch continues.
func runBatch(ctx context.Context, paths []string, process func(context.Context, updater.Updater, *report.ProjectResult) error) *report.Report {
	deps := depsProvider()
	store := storeProvider()
	rep := report.New()

	for _, path := range paths {
		res := report.ProjectResult{Name: path, Path: path}

		proj, err := store.Load(path)
		if err == nil {
			res.Name = proj.Name
			res.Current = proj.Identifier.Version

			var u updater.Updater
			if u, err = updaterProvider(proj, deps); err == nil {
				err = process(ctx, u, &res)
			}
		}
		if err != nil {
			classified := errorHandler.Classify(err)
			res.Status = report.StatusFailed
			res.Error = classified.Message + ": " + classified.Details
			appLogger.Error("project failed",
				zap.String("project", path),
				zap.Error(err))
		}
		rep.Add(res)
	}
	return rep
}

// fillFromCheck maps a check result onto a report row.
func fillFromCheck(res *report.ProjectResult, checked *updater.CheckResult) {
	res.Latest = checked.Decision.NextVersion
	res.Alternative = checked.Decision.AlternativeVersion
	if checked.Decision.Outcome == planner.OutcomeUpToDate {
		res.Status = report.StatusUpToDate
	} else {
		res.Status = report.StatusNewVersion
	}
}

// finishBatch writes the JSON report if requested. Individual project
// failures never fail the batch; only being unable to write the report
// does.
func finishBatch(rep *report.Report) error {
	if flagReportPath == "" {
		return nil
	}
	return rep.WriteJSON(flagReportPath)
}
