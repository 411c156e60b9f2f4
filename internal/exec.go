package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/apiarycd/autorelease/internal/credentials"
)

// execWithToken runs args with the token exported and returns the
// command's exit code. The error is set only when the command could not be
// started.
func execWithToken(ctx context.Context, token credentials.Token, args []string, stdout, stderr io.Writer) (int, error) {
	//nolint:gosec // user-supplied command
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(), token.Env())
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when terminated by a signal
		return max(exitErr.ExitCode(), exitFatal), nil
	}
	if err != nil {
		return exitFatal, fmt.Errorf("failed to run %s: %w", args[0], err)
	}

	return exitOK, nil
}
