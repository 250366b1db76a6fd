package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/vendsync/internal/git"
	"github.com/penwyp/vendsync/ui"
)

// validateProvider computes the divergence between a project's working tree
// and its recorded version; indirected for tests.
var validateProvider = func(ctx context.Context, projPath string) (string, error) {
	store := storeProvider()
	proj, err := store.Load(projPath)
	if err != nil {
		return "", err
	}

	runner := git.NewExecRunner(appLogger)
	remotes := git.NewRemoteManager(runner, appConfig.UpstreamRemote)
	remoteName, err := remotes.EnsureRemote(ctx, projPath, proj.Identifier.Locator)
	if err != nil {
		return "", err
	}
	if err := remotes.Fetch(ctx, projPath, remoteName); err != nil {
		return "", err
	}

	refs := git.NewRefResolver(runner)
	return refs.DiffStat(ctx, projPath, proj.Identifier.Version)
}

var validateCmd = &cobra.Command{
	Use:   "validate <project-path>...",
	Short: "Check whether each project's tree matches its recorded version",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.DefaultStyles()
		for _, path := range args {
			diff, err := validateProvider(cmd.Context(), path)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(),
					styles.Error.Render(fmt.Sprintf("%s: %v", path, err)))
				continue
			}
			if strings.TrimSpace(diff) == "" {
				fmt.Fprintln(cmd.OutOrStdout(),
					styles.Success.Render(fmt.Sprintf("%s: tree matches the recorded version", path)))
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				styles.Warning.Render(fmt.Sprintf("%s: tree diverges from the recorded version", path)))
			fmt.Fprintln(cmd.OutOrStdout(), diff)
		}
		return nil
	},
}
