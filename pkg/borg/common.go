package borg

import (
	"fmt"
	"strconv"

	"github.com/thoreinstein/goborg/internal/cmdline"
)

// DefaultBinary is the borg executable name used when CommonOptions does
// not override it. It is resolved against the search path at call time.
const DefaultBinary = "borg"

// CommonOptions apply to every borg invocation made through a Client.
type CommonOptions struct {
	// BinaryPath overrides the local borg executable (default "borg").
	BinaryPath string

	// RemotePath overrides the borg executable on the remote side of an
	// ssh:// repository.
	RemotePath string

	// RSH is the command used to reach a "borg serve" process, e.g.
	// "ssh -i /path/to/key". Empty means borg's default ("ssh").
	RSH string

	// UploadRateLimit caps network upload in kiB/s. Zero means unlimited.
	UploadRateLimit uint
}

func (o CommonOptions) binary() string {
	if o.BinaryPath != "" {
		return o.BinaryPath
	}
	return DefaultBinary
}

// appendTo renders the common flags in their fixed position, directly after
// --log-json and before the subcommand.
func (o CommonOptions) appendTo(b *cmdline.Builder) {
	b.Option("--rsh", o.RSH)
	b.Option("--remote-path", o.RemotePath)
	b.UintOption("--upload-ratelimit", o.UploadRateLimit)
}

// EncryptionMode selects how a new repository authenticates and encrypts
// its contents. See borg init's documentation for the trade-offs.
type EncryptionMode string

// The encryption modes accepted by borg init.
const (
	// EncryptionNone uses neither encryption nor authentication.
	EncryptionNone EncryptionMode = "none"
	// EncryptionAuthenticated stores plaintext authenticated with
	// HMAC-SHA256.
	EncryptionAuthenticated EncryptionMode = "authenticated"
	// EncryptionAuthenticatedBlake2 stores plaintext authenticated with
	// keyed BLAKE2b-256.
	EncryptionAuthenticatedBlake2 EncryptionMode = "authenticated-blake2"
	// EncryptionRepokey encrypts with AES-CTR-256, key stored in the
	// repository.
	EncryptionRepokey EncryptionMode = "repokey"
	// EncryptionKeyfile encrypts with AES-CTR-256, key stored locally.
	EncryptionKeyfile EncryptionMode = "keyfile"
	// EncryptionRepokeyBlake2 is Repokey with BLAKE2b-256 authentication.
	EncryptionRepokeyBlake2 EncryptionMode = "repokey-blake2"
	// EncryptionKeyfileBlake2 is Keyfile with BLAKE2b-256 authentication.
	EncryptionKeyfileBlake2 EncryptionMode = "keyfile-blake2"
)

func (m EncryptionMode) valid() bool {
	switch m {
	case EncryptionNone, EncryptionAuthenticated, EncryptionAuthenticatedBlake2,
		EncryptionRepokey, EncryptionKeyfile, EncryptionRepokeyBlake2, EncryptionKeyfileBlake2:
		return true
	}
	return false
}

// Compression selects the algorithm and level for new archive data. The
// zero value leaves the choice to borg (lz4).
type Compression struct {
	algorithm string
	level     int
	leveled   bool
}

// CompressionNone disables compression.
func CompressionNone() Compression { return Compression{algorithm: "none"} }

// CompressionLZ4 selects lz4: very fast, low ratio.
func CompressionLZ4() Compression { return Compression{algorithm: "lz4"} }

// CompressionZstd selects zstd at the given level (1..22).
func CompressionZstd(level int) Compression {
	return Compression{algorithm: "zstd", level: level, leveled: true}
}

// CompressionZlib selects zlib at the given level (0..9).
func CompressionZlib(level int) Compression {
	return Compression{algorithm: "zlib", level: level, leveled: true}
}

// CompressionLZMA selects lzma at the given level (0..9). Levels above 6
// waste CPU without compressing better at borg's buffer size.
func CompressionLZMA(level int) Compression {
	return Compression{algorithm: "lzma", level: level, leveled: true}
}

// IsZero reports whether the compression choice was left to borg.
func (c Compression) IsZero() bool { return c.algorithm == "" }

// String renders the value of borg's --compression flag.
func (c Compression) String() string {
	if c.leveled {
		return c.algorithm + "," + strconv.Itoa(c.level)
	}
	return c.algorithm
}

func (c Compression) validate() error {
	var min, max int
	switch c.algorithm {
	case "", "none", "lz4":
		return nil
	case "zstd":
		min, max = 1, 22
	case "zlib", "lzma":
		min, max = 0, 9
	default:
		return invalidf("Compression", "unknown algorithm %q", c.algorithm)
	}
	if c.level < min || c.level > max {
		return invalidf("Compression", "%s level %d out of range %d..%d", c.algorithm, c.level, min, max)
	}
	return nil
}

// Pattern is a borg path-matching expression with an explicit style
// prefix. Styles mirror borg's fm:, sh:, re:, pp: and pf: selectors.
type Pattern struct {
	style string
	expr  string
}

// FnMatch builds a fnmatch-style shell pattern (fm:).
func FnMatch(expr string) Pattern { return Pattern{style: "fm", expr: expr} }

// Shell builds a shell pattern with **/ support (sh:).
func Shell(expr string) Pattern { return Pattern{style: "sh", expr: expr} }

// Regex builds a regular-expression pattern (re:). Substring matches
// suffice, so anchor where needed.
func Regex(expr string) Pattern { return Pattern{style: "re", expr: expr} }

// PathPrefix matches a whole subdirectory (pp:).
func PathPrefix(expr string) Pattern { return Pattern{style: "pp", expr: expr} }

// PathFullMatch matches one exact path (pf:).
func PathFullMatch(expr string) Pattern { return Pattern{style: "pf", expr: expr} }

// String renders the prefixed pattern as borg expects it.
func (p Pattern) String() string { return p.style + ":" + p.expr }

func (p Pattern) validate(field string) error {
	if p.style == "" || p.expr == "" {
		return invalidf(field, "empty pattern")
	}
	return nil
}

// PatternInstruction is one entry of borg's ordered --pattern list: a
// recursion root or an include/exclude rule. Order matters; the first
// matching rule wins.
type PatternInstruction struct {
	prefix  string
	root    string
	pattern Pattern
}

// RootPath declares a recursion root ("P path").
func RootPath(path string) PatternInstruction {
	return PatternInstruction{prefix: "P", root: path}
}

// Include marks matched files for backup ("+ pattern").
func Include(p Pattern) PatternInstruction {
	return PatternInstruction{prefix: "+", pattern: p}
}

// Exclude skips matched files ("- pattern").
func Exclude(p Pattern) PatternInstruction {
	return PatternInstruction{prefix: "-", pattern: p}
}

// ExcludeNoRecurse skips matched directories without descending into them
// ("! pattern"), so includes below them are never discovered.
func ExcludeNoRecurse(p Pattern) PatternInstruction {
	return PatternInstruction{prefix: "!", pattern: p}
}

// String renders the instruction in borg's pattern-file syntax.
func (i PatternInstruction) String() string {
	if i.prefix == "P" {
		return "P " + i.root
	}
	return i.prefix + " " + i.pattern.String()
}

// IsRoot reports whether the instruction declares a recursion root.
func (i PatternInstruction) IsRoot() bool { return i.prefix == "P" }

func (i PatternInstruction) validate(field string) error {
	switch i.prefix {
	case "":
		return invalidf(field, "zero-value pattern instruction")
	case "P":
		if i.root == "" {
			return invalidf(field, "empty root path")
		}
		return nil
	default:
		return i.pattern.validate(field)
	}
}

// WithinUnit is the unit of a PruneWithin interval.
type WithinUnit string

// Units accepted by borg's --keep-within.
const (
	WithinHours  WithinUnit = "H"
	WithinDays   WithinUnit = "d"
	WithinWeeks  WithinUnit = "w"
	WithinMonths WithinUnit = "m"
	WithinYears  WithinUnit = "y"
)

// PruneWithin keeps all archives younger than the given interval,
// independently of the counted retention rules.
type PruneWithin struct {
	Count uint
	Unit  WithinUnit
}

// String renders the value of --keep-within, e.g. "7d".
func (w PruneWithin) String() string {
	return fmt.Sprintf("%d%s", w.Count, w.Unit)
}

// IsZero reports whether the interval is unset.
func (w PruneWithin) IsZero() bool { return w.Count == 0 && w.Unit == "" }

func (w PruneWithin) validate() error {
	if w.Count == 0 {
		return invalidf("KeepWithin", "zero interval")
	}
	switch w.Unit {
	case WithinHours, WithinDays, WithinWeeks, WithinMonths, WithinYears:
		return nil
	}
	return invalidf("KeepWithin", "unknown unit %q", string(w.Unit))
}
