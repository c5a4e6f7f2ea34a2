// Package borg drives the BorgBackup command-line tool programmatically.
//
// The package builds argument vectors for borg's subcommands, executes the
// binary as a child process, and translates its exit status and JSON output
// into typed results. Borg itself remains an opaque collaborator: no backup
// semantics are reimplemented here, and the only contracts relied on are
// borg's documented command line and its machine-readable output, described
// at https://borgbackup.readthedocs.io/en/stable/internals/frontends.html.
//
// # Usage
//
// Construct a Client, attach a credential, and call operations:
//
//	client := borg.New()
//	client.Credential = borg.Passphrase(secret)
//
//	out, err := client.List(borg.ListOptions{Repository: "/srv/backups/repo"})
//	if err != nil {
//	    // *borg.ToolError, *borg.SpawnError, ... via errors.As
//	}
//	for _, a := range out.Value.Archives {
//	    fmt.Println(a.Name, a.Start)
//	}
//
// Every operation has a blocking form (List, Create, ...) and a
// context-aware form (ListContext, CreateContext, ...). The two are
// identical except for the process-invocation primitive: the context form
// supports cancellation and guarantees the child process is killed before
// the call returns. Cancellation and timeouts surface as distinct errors
// (context errors and *TimeoutError) rather than as a borg failure, because
// in those cases the operation was abandoned, not completed.
//
// # Secrets
//
// Passphrases are never placed in the argument vector, where they would be
// visible in process listings. Depending on the Credential they travel via
// the BORG_PASSPHRASE environment variable, via stdin (BORG_PASSPHRASE_FD),
// or not at all when borg is told to obtain them itself (BORG_PASSCOMMAND).
//
// # Concurrency
//
// A Client holds no per-call state; concurrent calls are independent. The
// package does not serialize access to a repository: if two writers race,
// borg's own lock makes the loser fail with a ToolError (LockTimeout),
// which is expected behavior and not a wrapper defect.
package borg
