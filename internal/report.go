package internal

import (
	"fmt"

	"github.com/apiarycd/autorelease/internal/release"
	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	skipColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen, color.Bold)
)

// report prints the outcome and returns the exit code for it. Only a
// published release writes to stdout: the new tag.
func (c *cli) report(outcome *release.Outcome, skipExitCode int) int {
	if !outcome.Published() {
		skipColor.Fprintf(c.stderr, "autorelease: %s\n", outcome.Message)
		return skipExitCode
	}

	fmt.Fprintln(c.stdout, outcome.Tag)
	successColor.Fprintf(c.stderr, "autorelease: %s (%s bump from %s)\n",
		outcome.Message, outcome.Bump, outcome.PreviousVersion)

	return exitOK
}

func (c *cli) fatal(err error) {
	errorColor.Fprintf(c.stderr, "autorelease: %v\n", err)
}
