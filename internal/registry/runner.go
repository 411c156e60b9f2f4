package registry

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// Output holds the streams of a finished command.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Combined returns stdout followed by stderr.
func (o Output) Combined() []byte {
	return slices.Concat(o.Stdout, o.Stderr)
}

// Runner executes an external command.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, dir string, env []string, name string, args ...string) (Output, error)
}

type execRunner struct{}

func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command with env appended to the current environment.
// The error carries stderr on failure.
func (execRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return output, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return output, nil
}
