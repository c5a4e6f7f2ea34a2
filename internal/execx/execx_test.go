package execx

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive /bin/sh")
	}
}

func TestBlockingCapturesOutputAndExitCode(t *testing.T) {
	skipWithoutShell(t)

	res, err := Blocking().Run(context.Background(), Spec{
		Path: "sh",
		Args: []string{"-c", "echo out; echo err >&2; exit 3"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
	if strings.TrimSpace(string(res.Stdout)) != "out" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(string(res.Stderr)) != "err" {
		t.Errorf("stderr = %q", res.Stderr)
	}
	if res.Duration <= 0 {
		t.Error("duration not measured")
	}
}

func TestMissingBinaryIsStartError(t *testing.T) {
	_, err := Blocking().Run(context.Background(), Spec{Path: "definitely-not-a-real-binary-4c5d"})

	var startErr *StartError
	if !errors.As(err, &startErr) {
		t.Fatalf("err = %v, want *StartError", err)
	}
}

func TestBlockingTimeoutKillsChild(t *testing.T) {
	skipWithoutShell(t)

	start := time.Now()
	_, err := Blocking().Run(context.Background(), Spec{
		Path:    "sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("child outlived the deadline by far: %v", elapsed)
	}
}

func TestInterruptibleCancellationKillsChild(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Interruptible().Run(ctx, Spec{
		Path: "sh",
		Args: []string{"-c", "sleep 10"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation left the child running: %v", elapsed)
	}
}

func TestInterruptibleTimeoutIsErrTimeout(t *testing.T) {
	skipWithoutShell(t)

	_, err := Interruptible().Run(context.Background(), Spec{
		Path:    "sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestBlockingIgnoresContext(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Blocking().Run(ctx, Spec{Path: "sh", Args: []string{"-c", "echo ok"}})
	if err != nil {
		t.Fatalf("blocking run must ignore a cancelled context: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d", res.ExitCode)
	}
}

func TestStdinPayloadIsStreamed(t *testing.T) {
	skipWithoutShell(t)

	path := filepath.Join(t.TempDir(), "payload")
	if err := os.WriteFile(path, []byte("hunter2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	res, err := Blocking().Run(context.Background(), Spec{
		Path:      "sh",
		Args:      []string{"-c", "cat"},
		StdinPath: path,
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Stdout) != "hunter2\n" {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestEnvIsPassedVerbatim(t *testing.T) {
	skipWithoutShell(t)

	res, err := Blocking().Run(context.Background(), Spec{
		Path: "sh",
		Args: []string{"-c", "printf %s \"$PROBE\""},
		Env:  []string{"PROBE=alive", "PATH=" + os.Getenv("PATH")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Stdout) != "alive" {
		t.Errorf("stdout = %q", res.Stdout)
	}
}

func TestDirSetsWorkingDirectory(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	res, err := Blocking().Run(context.Background(), Spec{
		Path: "sh",
		Args: []string{"-c", "pwd"},
		Dir:  dir,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(res.Stdout)))
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestSignalDeathReportsShellConvention(t *testing.T) {
	skipWithoutShell(t)

	res, err := Blocking().Run(context.Background(), Spec{
		Path: "sh",
		Args: []string{"-c", "kill -TERM $$"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 128+15 {
		t.Errorf("exit code = %d, want %d", res.ExitCode, 128+15)
	}
}

func TestStreamDeliversStderrLines(t *testing.T) {
	skipWithoutShell(t)

	var lines []string
	res, err := Stream(context.Background(), Spec{
		Path: "sh",
		Args: []string{"-c", "echo one >&2; echo two >&2; echo result"},
	}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("lines = %v", lines)
	}
	if strings.TrimSpace(string(res.Stdout)) != "result" {
		t.Errorf("stdout = %q", res.Stdout)
	}
	// The full stream is retained for classification after the fact.
	if !strings.Contains(string(res.Stderr), "one") {
		t.Errorf("stderr not retained: %q", res.Stderr)
	}
}

func TestBlockingFastChildBeatsDeadline(t *testing.T) {
	skipWithoutShell(t)

	// A child exiting well inside the deadline must never be reported
	// as timed out, regardless of how the timer and the exit race.
	for range 20 {
		res, err := Blocking().Run(context.Background(), Spec{
			Path:    "sh",
			Args:    []string{"-c", "exit 0"},
			Timeout: 30 * time.Second,
		})
		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if res.ExitCode != 0 {
			t.Fatalf("exit code = %d, want 0", res.ExitCode)
		}
	}
}
