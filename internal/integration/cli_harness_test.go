//go:build e2e

// cli_harness_test.go provides a test harness for E2E testing of the loanops CLI.
//
// The CLIHarness builds the loanops binary and runs it in an isolated
// workspace with a controlled environment.
package integration

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	buildOnce   sync.Once
	builtBinary string
	buildErr    error
	buildOutput []byte
)

// CLIHarness manages a loanops binary for E2E testing.
type CLIHarness struct {
	// BinaryPath is the path to the built loanops binary.
	BinaryPath string

	// WorkDir is the working directory where commands will be executed.
	WorkDir string

	// EnvVars contains environment variables to set for command execution.
	EnvVars map[string]string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the loanops binary (once per test binary) and
// creates an empty workspace.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	projectRoot := findProjectRoot(t)
	require.NotEmpty(t, projectRoot, "could not find project root (directory containing go.mod)")

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "loanops-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		builtBinary = filepath.Join(dir, "loanops")
		cmd := exec.Command("go", "build", "-o", builtBinary, "./cmd/loanops")
		cmd.Dir = projectRoot
		buildOutput, buildErr = cmd.CombinedOutput()
	})
	require.NoError(t, buildErr, "failed to build loanops binary: %s", buildOutput)

	workDir := filepath.Join(t.TempDir(), "workspace")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	return &CLIHarness{
		BinaryPath: builtBinary,
		WorkDir:    workDir,
		EnvVars:    make(map[string]string),
		t:          t,
	}
}

// SetEnv sets an environment variable for subsequent command executions.
func (h *CLIHarness) SetEnv(key, value string) {
	h.EnvVars[key] = value
}

// Run executes a loanops command with a 30 second timeout.
func (h *CLIHarness) Run(args ...string) *CLIResult {
	return h.RunWithInput(nil, args...)
}

// RunWithInput executes a loanops command feeding stdin from in.
func (h *CLIHarness) RunWithInput(in io.Reader, args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.WorkDir
	cmd.Env = h.buildEnv()
	cmd.Stdin = in

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CLIResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		result.Err = err
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}
	return result
}

// buildEnv passes the process environment through, minus any LOANOPS_
// variables from the developer's shell, plus the configured variables.
func (h *CLIHarness) buildEnv() []string {
	env := []string{}
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "LOANOPS_") {
			env = append(env, e)
		}
	}
	for k, v := range h.EnvVars {
		env = append(env, k+"="+v)
	}
	return env
}

// findProjectRoot walks up from the current directory to the go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RequireSuccess fails the test if the command result indicates failure.
func (h *CLIHarness) RequireSuccess(result *CLIResult, msg string) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("%s: exit=%d err=%v\nstdout: %s\nstderr: %s",
			msg, result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command result indicates success.
func (h *CLIHarness) RequireFailure(result *CLIResult, msg string) {
	h.t.Helper()
	if result.Success() {
		h.t.Fatalf("%s: command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			msg, result.Stdout, result.Stderr)
	}
}
