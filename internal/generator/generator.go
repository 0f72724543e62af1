// Package generator runs the external tool that produces raw API metadata.
package generator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
)

// maxStderr bounds the stderr text carried in a returned error.
const maxStderr = 4096

// Runner describes one generator invocation.
type Runner struct {
	Command string
	Args    []string
	// Inputs are paths that must exist before the command starts.
	Inputs []string
	// Dir is the working directory; empty means the current one.
	Dir    string
	Logger *slog.Logger
}

// Result holds the captured output of a successful run.
type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Run checks the inputs and runs the command. Missing inputs are validation
// errors; a command that cannot start or exits non-zero is a generator error
// carrying its stderr.
func (r Runner) Run(ctx context.Context) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(r.Command) == "" {
		return nil, foundationerrors.ValidationError("generator command is not configured").Build()
	}
	if err := checkInputs(r.Inputs); err != nil {
		return nil, err
	}

	// #nosec G204 -- command and arguments come from the operator's configuration
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Dir = r.Dir
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	logger.Info("Running metadata generator", slog.String("command", r.Command), slog.Any("args", r.Args))
	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)
	if err != nil {
		stderr := truncate(errBuf.String())
		logger.Error("Metadata generator failed",
			slog.String("command", r.Command),
			logfields.Duration(duration),
			logfields.Error(err),
			slog.String("stderr", stderr))

		builder := foundationerrors.GeneratorError("metadata generator failed").
			WithCause(err).
			WithContext("command", r.Command).
			WithContext("stderr", stderr)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			builder = builder.WithContext("exit_code", exitErr.ExitCode())
		}
		return nil, builder.Build()
	}

	logger.Info("Metadata generator finished", slog.String("command", r.Command), logfields.Duration(duration))
	return &Result{Stdout: outBuf.String(), Stderr: errBuf.String(), Duration: duration}, nil
}

func checkInputs(inputs []string) error {
	var missing []string
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			missing = append(missing, in)
		}
	}
	if len(missing) > 0 {
		return foundationerrors.ValidationError("generator input paths do not exist").
			WithContext("inputs", missing).
			Build()
	}
	return nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxStderr {
		return s
	}
	start := len(s) - maxStderr
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
