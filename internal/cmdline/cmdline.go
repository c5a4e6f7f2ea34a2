// Package cmdline assembles argv and environment for one borg invocation.
//
// Arguments are discrete argv elements; no shell is ever involved, so values
// containing spaces or metacharacters need no quoting and cannot be used for
// injection. Secrets never appear in Args: they travel through Env or the
// stdin payload only. The flag order produced by Builder is fixed, so the
// same options always yield byte-identical argument vectors.
package cmdline

import (
	"fmt"
	"os"
)

// CommandLine is the fully assembled invocation. It is built once, handed
// to the process runner, and discarded with the call.
type CommandLine struct {
	// Args is the argument vector after the binary name.
	Args []string

	// Env is the complete child environment (parent environment plus the
	// credential variables).
	Env []string

	// StdinPath names a file to stream to the child's stdin, when set.
	StdinPath string

	// Dir is the child's working directory, when set.
	Dir string
}

// Builder accumulates argv elements in a fixed order.
type Builder struct {
	args []string
	env  []string
}

// NewBuilder returns a builder whose environment starts as a copy of the
// calling process's environment, so PATH resolution and locale behave as
// the caller expects.
func NewBuilder() *Builder {
	return &Builder{env: os.Environ()}
}

// Arg appends literal argv elements.
func (b *Builder) Arg(values ...string) *Builder {
	b.args = append(b.args, values...)
	return b
}

// Flag appends a boolean flag when on is true.
func (b *Builder) Flag(name string, on bool) *Builder {
	if on {
		b.args = append(b.args, name)
	}
	return b
}

// Option appends "name value" as two argv elements when value is non-empty.
func (b *Builder) Option(name, value string) *Builder {
	if value != "" {
		b.args = append(b.args, name, value)
	}
	return b
}

// UintOption appends "name n" when n is non-zero.
func (b *Builder) UintOption(name string, n uint) *Builder {
	if n != 0 {
		b.args = append(b.args, name, fmt.Sprintf("%d", n))
	}
	return b
}

// Assignment appends a single "name=value" argv element. borg requires the
// joined form for repeatable pattern options.
func (b *Builder) Assignment(name, value string) *Builder {
	b.args = append(b.args, name+"="+value)
	return b
}

// Setenv adds an environment variable for the child process.
func (b *Builder) Setenv(name, value string) *Builder {
	b.env = append(b.env, name+"="+value)
	return b
}

// Build finalizes the command line. The builder must not be reused.
func (b *Builder) Build() CommandLine {
	return CommandLine{Args: b.args, Env: b.env}
}
