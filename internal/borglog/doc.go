// Package borglog parses the line-delimited JSON that borg writes to stderr
// when invoked with --log-json.
//
// Each line is one record. Records of type "log_message" carry a level, a
// human-readable message, and optionally a message ID such as
// "Repository.AlreadyExists" that names the failure without requiring text
// matching. Records of type "archive_progress" report running totals during
// borg create. The remaining progress record types are recognized but not
// interpreted.
//
// Lines that do not parse as JSON are preserved verbatim: borg prints plain
// text in a few corner cases (and so do wrappers like sudo), and that text
// is still useful diagnostic detail.
//
// The record formats are documented at
// https://borgbackup.readthedocs.io/en/stable/internals/frontends.html
package borglog
