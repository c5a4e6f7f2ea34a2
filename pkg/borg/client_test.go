package borg

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/goborg/internal/execx"
	"github.com/thoreinstein/goborg/internal/logging"
)

// fakeRunner records the spec it was handed and plays back a canned
// result, so the argument-vector and classification layers are testable
// without a borg binary.
type fakeRunner struct {
	lastSpec execx.Spec
	res      *execx.Result
	err      error
}

func (f *fakeRunner) Run(_ context.Context, spec execx.Spec) (*execx.Result, error) {
	f.lastSpec = spec
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func newTestClient(f *fakeRunner) *Client {
	c := New()
	c.blocking = f
	c.interruptible = f
	return c
}

func okResult(stdout string) *execx.Result {
	return &execx.Result{ExitCode: 0, Stdout: []byte(stdout)}
}

const listJSON = `{
  "archives": [
    {"id": "a1b2", "name": "daily-2024-03-01", "start": "2024-03-01T12:30:45.000000"}
  ],
  "encryption": {"mode": "repokey"},
  "repository": {
    "id": "deadbeef",
    "location": "/tmp/repo",
    "last_modified": "2024-03-01T12:31:00.000000",
    "some_future_field": 42
  }
}`

func TestListDecodesPayload(t *testing.T) {
	f := &fakeRunner{res: okResult(listJSON)}
	c := newTestClient(f)

	out, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	if out.Warned() {
		t.Errorf("unexpected warning %q", out.Warning)
	}
	if got := len(out.Value.Archives); got != 1 {
		t.Fatalf("archives = %d, want 1", got)
	}
	a := out.Value.Archives[0]
	if a.Name != "daily-2024-03-01" {
		t.Errorf("archive name = %q", a.Name)
	}
	if a.Start.Year() != 2024 || a.Start.Second() != 45 {
		t.Errorf("start decoded as %v", a.Start)
	}
	if out.Value.Repository.ID != "deadbeef" {
		t.Errorf("repository id = %q", out.Value.Repository.ID)
	}

	wantArgs := []string{"--log-json", "list", "--json", "/tmp/repo"}
	if !slices.Equal(f.lastSpec.Args, wantArgs) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, wantArgs)
	}
}

func TestListWarningOutcome(t *testing.T) {
	stderr := `{"type": "log_message", "levelname": "WARNING", "name": "borg.archiver", "message": "file changed while we backed it up", "time": 1.0}`
	f := &fakeRunner{res: &execx.Result{
		ExitCode: 1,
		Stdout:   []byte(listJSON),
		Stderr:   []byte(stderr + "\n"),
	}}
	c := newTestClient(f)

	out, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	if !out.Warned() {
		t.Fatal("expected a warning outcome")
	}
	if !strings.Contains(out.Warning, "file changed") {
		t.Errorf("warning = %q", out.Warning)
	}
}

func TestWarningWithSilentStderrStillWarns(t *testing.T) {
	// borg can exit 1 without writing anything usable to stderr; the
	// warning state must survive that.
	f := &fakeRunner{res: &execx.Result{ExitCode: 1, Stdout: []byte(listJSON)}}
	c := newTestClient(f)

	out, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	if !out.Warned() {
		t.Fatal("exit code 1 must report a warning outcome even with empty stderr")
	}
	if out.Warning != "" {
		t.Errorf("warning text = %q, want empty", out.Warning)
	}

	unitOut, err := c.Check(CheckOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)
	if !unitOut.Warned() {
		t.Fatal("unit operations must carry the warning state too")
	}
}

func TestZeroValueClientDoesNotPanic(t *testing.T) {
	var c Client
	c.Options.BinaryPath = "/nonexistent/borg-binary-e7f1"

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})
	var spawn *SpawnError
	if !errors.As(err, &spawn) {
		t.Fatalf("err = %v, want *SpawnError", err)
	}

	_, err = c.ListContext(context.Background(), ListOptions{Repository: "/tmp/repo"})
	if !errors.As(err, &spawn) {
		t.Fatalf("context form: err = %v, want *SpawnError", err)
	}
}

func TestLogRecordsForwardToLogger(t *testing.T) {
	stderr := `{"type": "log_message", "levelname": "WARNING", "name": "borg.archiver", "message": "file changed while we backed it up", "time": 1.0}`
	f := &fakeRunner{res: &execx.Result{
		ExitCode: 1,
		Stdout:   []byte(listJSON),
		Stderr:   []byte(stderr + "\n"),
	}}
	c := newTestClient(f)

	var buf bytes.Buffer
	c.Logger = logging.New(logging.Config{
		Level:  logging.LevelTrace,
		Format: logging.FormatJSON,
		Output: &buf,
	})

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	logged := buf.String()
	if !strings.Contains(logged, "file changed while we backed it up") {
		t.Errorf("borg's log record should reach the logger, got %q", logged)
	}
	if !strings.Contains(logged, "borg.archiver") {
		t.Errorf("record name should reach the logger, got %q", logged)
	}
}

func TestListToolError(t *testing.T) {
	stderr := `{"type": "log_message", "levelname": "ERROR", "name": "borg.archiver", "message": "Repository /tmp/nope does not exist.", "msgid": "Repository.DoesNotExist", "time": 1.0}`
	f := &fakeRunner{res: &execx.Result{ExitCode: 2, Stderr: []byte(stderr + "\n")}}
	c := newTestClient(f)

	_, err := c.List(ListOptions{Repository: "/tmp/nope"})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	if toolErr.MsgID != "Repository.DoesNotExist" {
		t.Errorf("msgid = %q", toolErr.MsgID)
	}
	if !strings.Contains(toolErr.Detail, "/tmp/nope") {
		t.Errorf("detail %q does not mention the path", toolErr.Detail)
	}
	if !IsRepositoryDoesNotExist(err) {
		t.Error("IsRepositoryDoesNotExist should match")
	}
	if IsPassphraseWrong(err) {
		t.Error("IsPassphraseWrong should not match")
	}
}

func TestSignalDeathIsProcessError(t *testing.T) {
	f := &fakeRunner{res: &execx.Result{ExitCode: 137, Stderr: []byte("Killed\n")}}
	c := newTestClient(f)

	_, err := c.Compact(CompactOptions{Repository: "/tmp/repo"})

	var procErr *ProcessError
	require.ErrorAs(t, err, &procErr)
	if procErr.ExitCode != 137 {
		t.Errorf("exit code = %d, want 137", procErr.ExitCode)
	}
}

func TestTimeoutMapsToTimeoutError(t *testing.T) {
	f := &fakeRunner{err: execx.ErrTimeout}
	c := newTestClient(f)
	c.Timeout = time.Second

	_, err := c.Extract(ExtractOptions{Repository: "/tmp/repo", Archive: "a"})

	if !IsTimeout(err) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	if timeoutErr.After != time.Second {
		t.Errorf("After = %v", timeoutErr.After)
	}
}

func TestStartFailureMapsToSpawnError(t *testing.T) {
	f := &fakeRunner{err: &execx.StartError{Path: "borg", Err: errors.New("executable file not found in $PATH")}}
	c := newTestClient(f)

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	if spawnErr.Path != "borg" {
		t.Errorf("path = %q", spawnErr.Path)
	}
}

func TestCancellationPassesThrough(t *testing.T) {
	f := &fakeRunner{err: context.Canceled}
	c := newTestClient(f)

	_, err := c.ListContext(context.Background(), ListOptions{Repository: "/tmp/repo"})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestUndecodableSuccessIsDecodeError(t *testing.T) {
	f := &fakeRunner{res: okResult("not json at all")}
	c := newTestClient(f)

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})

	if !IsDecode(err) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	if decErr.Raw != "not json at all" {
		t.Errorf("raw stdout not preserved: %q", decErr.Raw)
	}
}

func TestPassphraseStaysOutOfArgv(t *testing.T) {
	f := &fakeRunner{res: okResult(listJSON)}
	c := newTestClient(f)
	c.Credential = Passphrase("s3cr3t!uns@fe")

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	for _, arg := range f.lastSpec.Args {
		if strings.Contains(arg, "s3cr3t") {
			t.Fatalf("secret leaked into argv: %v", f.lastSpec.Args)
		}
	}
	if !slices.Contains(f.lastSpec.Env, "BORG_PASSPHRASE=s3cr3t!uns@fe") {
		t.Error("passphrase missing from child environment")
	}
}

func TestPassphraseFileStreamsViaStdin(t *testing.T) {
	f := &fakeRunner{res: okResult(listJSON)}
	c := newTestClient(f)
	c.Credential = PassphraseFile("/run/secrets/borg")

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	if f.lastSpec.StdinPath != "/run/secrets/borg" {
		t.Errorf("stdin path = %q", f.lastSpec.StdinPath)
	}
	if !slices.Contains(f.lastSpec.Env, "BORG_PASSPHRASE_FD=0") {
		t.Error("BORG_PASSPHRASE_FD=0 missing from child environment")
	}
	for _, v := range f.lastSpec.Env {
		if strings.HasPrefix(v, "BORG_PASSPHRASE=") {
			t.Error("file mode must not also set BORG_PASSPHRASE")
		}
	}
}

func TestPassphraseCommandSendsCommandOnly(t *testing.T) {
	f := &fakeRunner{res: okResult(listJSON)}
	c := newTestClient(f)
	c.Credential = PassphraseCommand("pass show backup/borg")

	_, err := c.List(ListOptions{Repository: "/tmp/repo"})
	require.NoError(t, err)

	if !slices.Contains(f.lastSpec.Env, "BORG_PASSCOMMAND=pass show backup/borg") {
		t.Error("BORG_PASSCOMMAND missing from child environment")
	}
}

func TestCompactRejectsCredential(t *testing.T) {
	c := newTestClient(&fakeRunner{})
	c.Credential = Passphrase("secret")

	_, err := c.Compact(CompactOptions{Repository: "/tmp/repo"})

	var comboErr *UnsupportedOptionCombinationError
	require.ErrorAs(t, err, &comboErr)
	if comboErr.Op != "compact" {
		t.Errorf("op = %q", comboErr.Op)
	}
}

func TestUmountRejectsCredential(t *testing.T) {
	c := newTestClient(&fakeRunner{})
	c.Credential = PassphraseCommand("pass show x")

	_, err := c.Umount("/mnt/borg")

	var comboErr *UnsupportedOptionCombinationError
	require.ErrorAs(t, err, &comboErr)
}

func TestInitEncryptedRequiresCredential(t *testing.T) {
	c := newTestClient(&fakeRunner{})

	_, err := c.Init(InitOptions{Repository: "/tmp/repo", Encryption: EncryptionRepokey})

	var comboErr *UnsupportedOptionCombinationError
	require.ErrorAs(t, err, &comboErr)
}

func TestInitUnencryptedNeedsNoCredential(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	out, err := c.Init(InitOptions{Repository: "/tmp/repo", Encryption: EncryptionNone})
	require.NoError(t, err)

	if out.Warned() {
		t.Errorf("unexpected warning %q", out.Warning)
	}
	wantArgs := []string{"--log-json", "init", "-e", "none", "/tmp/repo"}
	if !slices.Equal(f.lastSpec.Args, wantArgs) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, wantArgs)
	}
}

func TestValidationFailureSpawnsNothing(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Create(CreateOptions{Repository: "", Archive: "a", Paths: []string{"/etc"}})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	if f.lastSpec.Path != "" {
		t.Error("invalid options must not reach the runner")
	}
}
