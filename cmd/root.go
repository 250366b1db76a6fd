package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/penwyp/vendsync/internal/config"
	apperrors "github.com/penwyp/vendsync/internal/errors"
	"github.com/penwyp/vendsync/internal/git"
	"github.com/penwyp/vendsync/internal/logger"
	"github.com/penwyp/vendsync/internal/metadata"
	"github.com/penwyp/vendsync/internal/planner"
	"github.com/penwyp/vendsync/internal/registry"
	"github.com/penwyp/vendsync/internal/updater"
)

// version is set at build time via ldflags.
var version = "dev"

// GetVersionString returns the formatted version string.
func GetVersionString() string {
	return fmt.Sprintf("vendsync version %s", version)
}

var (
	flagDebug      bool
	flagConfig     string
	flagReportPath string

	appLogger    *zap.Logger
	appConfig    *config.Config
	errorHandler = apperrors.NewHandler()
)

// Dependency construction is indirected through package vars so tests can
// substitute fakes without touching the real git binary or the network.
var (
	depsProvider    = buildDeps
	storeProvider   = func() projectStore { return metadata.NewStore() }
	updaterProvider = func(proj *metadata.Project, deps updater.Deps) (updater.Updater, error) {
		return updater.New(proj, deps)
	}
)

type projectStore interface {
	Load(projPath string) (*metadata.Project, error)
	UpdateVersion(projPath, newVersion string) error
}

func buildDeps() updater.Deps {
	runner := git.NewExecRunner(appLogger)
	remotes := git.NewRemoteManager(runner, appConfig.UpstreamRemote)
	tags := git.NewTagCatalog(runner, appConfig.UnstableTagPatterns)
	ancestry := git.NewAncestryOracle(runner)
	refs := git.NewRefResolver(runner)

	return updater.Deps{
		Planner:  planner.New(remotes, tags, ancestry, refs, appLogger),
		Merger:   git.NewMerger(runner),
		Ancestry: ancestry,
		Store:    metadata.NewStore(),
		Crates:   registry.NewCratesClient("", appLogger),
		Releases: registry.NewGitHubClient(appConfig.GitHubToken),
		Logger:   appLogger,
	}
}

var rootCmd = &cobra.Command{
	Use:   "vendsync",
	Short: "Keep vendored third-party projects in sync with their upstreams",
	Long: `vendsync discovers new upstream releases for vendored third-party
projects and moves the local mirrors toward them. Each project records its
upstream and current version in a ` + metadata.FileName + ` file; vendsync
classifies the versioning discipline (commit or tag tracking), finds the
best next version, and merges it in without ever silently regressing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appLogger, err = logger.New(flagDebug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		appConfig, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the root command and maps any failure to its exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		classified := errorHandler.Classify(err)
		fmt.Fprintln(os.Stderr, "Error:", classified.Message)
		if classified.Details != "" {
			fmt.Fprintln(os.Stderr, classified.Details)
		}
		if classified.Suggestion != "" {
			fmt.Fprintln(os.Stderr, classified.Suggestion)
		}
		os.Exit(classified.ExitCode)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to vendsync configuration file")
	rootCmd.PersistentFlags().StringVar(&flagReportPath, "report", "", "write a JSON report to this path")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vendsync version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), GetVersionString())
	},
}
