package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/apiarycd/autorelease/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Set at build time with -ldflags.
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK    = 0
	exitFatal = 1
)

type cli struct {
	overrides config.Overrides

	stdout io.Writer
	stderr io.Writer

	code int
}

// Run executes the command line and returns the process exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{stdout: os.Stdout, stderr: os.Stderr}

	return c.execute(ctx, os.Args[1:])
}

func (c *cli) execute(ctx context.Context, args []string) int {
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		c.fatal(err)
		return exitFatal
	}

	return c.code
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "autorelease",
		Short: "Publish an npm package when its contents changed",
		Long: `autorelease checks whether the packed package differs from the version
already on the registry. When it does, it picks the next semantic version
from the commits since the last version change, commits and tags the bump,
publishes the package and pushes the release.

Off the release branch, or when nothing changed, it exits without doing
anything.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&c.overrides.Branch, "branch", "", "release branch (overrides release.branch)")
	root.PersistentFlags().StringVar(&c.overrides.Dir, "dir", "", "package repository root (overrides git.dir)")

	releaseCmd := &cobra.Command{
		Use:   "release",
		Short: "Bump, tag, publish and push when the package changed",
		Args:  cobra.NoArgs,
		RunE:  c.runRelease,
	}
	releaseCmd.Flags().BoolVar(&c.overrides.DryRun, "dry-run", false, "report the next version without changing anything")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Report the next version without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.overrides.DryRun = true
			return c.runRelease(cmd, args)
		},
	}

	execCmd := &cobra.Command{
		Use:   "exec -- command [args...]",
		Short: "Run a command with the registry token in its environment",
		Long: `Exec resolves the registry token the same way release does and runs
the command with it exported as NPM_TOKEN. The command's exit code is
returned unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runExec,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autorelease %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", date)
		},
	}

	root.AddCommand(releaseCmd, planCmd, execCmd, versionCmd)

	return root
}

func (c *cli) runRelease(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), c.overrides, func(ctx context.Context, svc *services) error {
		outcome, err := svc.engine.Run(ctx)
		svc.recorder.Observe(ctx, outcome, err)
		if err != nil {
			return err
		}

		c.code = c.report(outcome, svc.config.Release.SkipExitCode)

		return nil
	})
}

func (c *cli) runExec(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), c.overrides, func(ctx context.Context, svc *services) error {
		token, err := svc.tokens.Resolve(ctx)
		if err != nil {
			return err
		}

		c.code, err = execWithToken(ctx, token, args, c.stdout, c.stderr)

		return err
	})
}
