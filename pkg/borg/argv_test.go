package borg

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// The argument vectors below are a compatibility surface: they are the
// documented, stable order each operation renders, and they must not
// drift between releases.

func TestCreateArgumentOrder(t *testing.T) {
	f := &fakeRunner{res: okResult(`{}`)}
	c := newTestClient(f)

	_, err := c.Create(CreateOptions{
		Repository:    "/tmp/repo",
		Archive:       "daily-{now}",
		Paths:         []string{"/etc", "/home"},
		Comment:       "nightly run",
		Compression:   CompressionZstd(3),
		NumericIDs:    true,
		ExcludeCaches: true,
		Patterns: []PatternInstruction{
			RootPath("/srv"),
			Exclude(Shell("**/.cache")),
		},
		Excludes:    []Pattern{FnMatch("*.tmp")},
		ExcludeFile: "/etc/borg/excludes",
	})
	require.NoError(t, err)

	want := []string{
		"--log-json",
		"create", "--json",
		"--comment", "nightly run",
		"--compression", "zstd,3",
		"--numeric-ids",
		"--exclude-caches",
		"--pattern=P /srv",
		"--pattern=- sh:**/.cache",
		"--exclude=fm:*.tmp",
		"--exclude-from", "/etc/borg/excludes",
		"/tmp/repo::daily-{now}",
		"/etc", "/home",
	}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args =\n%v\nwant\n%v", f.lastSpec.Args, want)
	}
}

func TestPruneArgumentOrder(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Prune(PruneOptions{
		Repository:  "/tmp/repo",
		KeepWithin:  PruneWithin{Count: 2, Unit: WithinDays},
		KeepDaily:   7,
		KeepWeekly:  4,
		KeepMonthly: 6,
	})
	require.NoError(t, err)

	want := []string{
		"--log-json",
		"prune",
		"--keep-within", "2d",
		"--keep-daily", "7",
		"--keep-weekly", "4",
		"--keep-monthly", "6",
		"/tmp/repo",
	}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
}

func TestInitArgumentOrder(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)
	c.Credential = Passphrase("secret")

	_, err := c.Init(InitOptions{
		Repository:     "ssh://backup@host/./repo",
		Encryption:     EncryptionRepokey,
		AppendOnly:     true,
		MakeParentDirs: true,
		StorageQuota:   "50G",
	})
	require.NoError(t, err)

	want := []string{
		"--log-json",
		"init", "-e", "repokey",
		"--append-only",
		"--make-parent-dirs",
		"--storage-quota", "50G",
		"ssh://backup@host/./repo",
	}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
}

func TestCommonOptionsPrecedeSubcommand(t *testing.T) {
	f := &fakeRunner{res: okResult(listJSON)}
	c := newTestClient(f)
	c.Options = CommonOptions{
		RSH:             "ssh -i /root/.ssh/backup",
		RemotePath:      "/usr/local/bin/borg",
		UploadRateLimit: 1024,
	}

	_, err := c.List(ListOptions{Repository: "ssh://host/repo"})
	require.NoError(t, err)

	want := []string{
		"--log-json",
		"--rsh", "ssh -i /root/.ssh/backup",
		"--remote-path", "/usr/local/bin/borg",
		"--upload-ratelimit", "1024",
		"list", "--json", "ssh://host/repo",
	}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
}

func TestMountArgumentOrder(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Mount(MountOptions{
		Repository:   "/tmp/repo",
		Last:         2,
		GlobArchives: "daily-*",
		Mountpoint:   "/mnt/borg",
		Select:       []PatternInstruction{Include(PathPrefix("/etc"))},
	})
	require.NoError(t, err)

	want := []string{
		"--log-json",
		"mount", "/tmp/repo",
		"--last", "2",
		"--glob-archives", "daily-*",
		"/mnt/borg",
		"--pattern=+ pp:/etc",
	}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
}

func TestMountArchiveSource(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Mount(MountOptions{
		Repository: "/tmp/repo",
		Archive:    "daily-1",
		Mountpoint: "/mnt/borg",
	})
	require.NoError(t, err)

	want := []string{"--log-json", "mount", "/tmp/repo::daily-1", "/mnt/borg"}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
}

func TestDeleteWholeRepositoryAcknowledges(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Delete(DeleteOptions{Repository: "/tmp/repo", All: true, Force: true})
	require.NoError(t, err)

	want := []string{"--log-json", "delete", "--force", "/tmp/repo"}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
	if !slices.Contains(f.lastSpec.Env, "BORG_DELETE_I_KNOW_WHAT_I_AM_DOING=YES") {
		t.Error("whole-repository delete must acknowledge via environment")
	}
}

func TestExtractRunsInDestination(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Extract(ExtractOptions{
		Repository:      "/tmp/repo",
		Archive:         "daily-1",
		Paths:           []string{"etc/hosts"},
		Destination:     "/restore",
		StripComponents: 1,
	})
	require.NoError(t, err)

	want := []string{
		"--log-json",
		"extract",
		"--strip-components", "1",
		"/tmp/repo::daily-1",
		"etc/hosts",
	}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
	if f.lastSpec.Dir != "/restore" {
		t.Errorf("dir = %q, want /restore", f.lastSpec.Dir)
	}
}

func TestCheckRepairAcknowledges(t *testing.T) {
	f := &fakeRunner{res: okResult("")}
	c := newTestClient(f)

	_, err := c.Check(CheckOptions{Repository: "/tmp/repo", Repair: true})
	require.NoError(t, err)

	if !slices.Contains(f.lastSpec.Env, "BORG_CHECK_I_KNOW_WHAT_I_AM_DOING=YES") {
		t.Error("repair must acknowledge via environment")
	}
	want := []string{"--log-json", "check", "--repair", "/tmp/repo"}
	if !slices.Equal(f.lastSpec.Args, want) {
		t.Errorf("args = %v, want %v", f.lastSpec.Args, want)
	}
}

func TestHostileValuesStayDiscrete(t *testing.T) {
	f := &fakeRunner{res: okResult(listJSON)}
	c := newTestClient(f)

	repo := `/tmp/repo; rm -rf / #" $(evil)`
	_, err := c.List(ListOptions{Repository: repo})
	require.NoError(t, err)

	if !slices.Contains(f.lastSpec.Args, repo) {
		t.Errorf("hostile repository path must survive as one argv element: %v", f.lastSpec.Args)
	}
}
