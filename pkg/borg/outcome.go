package borg

// Outcome carries an operation's decoded payload together with the
// warning text borg emitted when it exited with code 1, e.g. a file
// that changed while it was being read.
type Outcome[T any] struct {
	Value   T
	Warning string

	warned bool
}

// Warned reports whether borg completed with a warning, i.e. exit
// code 1. The warning state comes from the exit code, not the text:
// borg sometimes warns without writing anything to stderr, and Warning
// is empty then.
func (o Outcome[T]) Warned() bool { return o.warned }

// Unit is the payload of operations that produce no output.
type Unit struct{}
