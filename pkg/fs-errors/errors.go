// Package fserrors defines the error kinds shared by every fsprobe query.
//
// Failures are reported as a *Error wrapping the underlying OS error and
// tagged with a Kind. Callers classify with errors.Is against the Kind
// constants and reach the errno through errors.As / Unwrap.
package fserrors

import (
	"fmt"
)

// Kind tags an error with the failure class it belongs to.
type Kind string

const (
	// KindLogic marks a precondition violated by the caller, such as a
	// relative path where an absolute one is required. Retrying cannot
	// help; it indicates a bug in the calling code.
	KindLogic Kind = "logic error"

	// KindSystem marks an OS metadata call that failed for a reason other
	// than signal interruption.
	KindSystem Kind = "system error"

	// KindStatVFS marks a failed filesystem-statistics query. Kept
	// separate from KindSystem so callers can special-case "cannot
	// determine free space" from generic stat failures.
	KindStatVFS Kind = "cannot query filesystem statistics"

	// KindNotSupported marks a capability the platform does not provide.
	// It is static for a given build, never input-dependent.
	KindNotSupported Kind = "not supported on this platform"

	// KindNotFound marks a lookup that completed without error but
	// matched nothing.
	KindNotFound Kind = "not found"
)

func (k Kind) Error() string { return string(k) }

// Error is the concrete error returned by every failing query. Op names
// the operation, Path the offending path (empty when not applicable) and
// Err the underlying OS error (nil when not applicable).
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + string(e.Kind)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target matches this error's kind, so that
// errors.Is(err, fserrors.KindNotFound) works without unwrapping.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// New builds a kind-tagged error without an underlying cause.
func New(kind Kind, op, path string) *Error {
	return &Error{Op: op, Path: path, Kind: kind}
}

// Wrap builds a kind-tagged error around an underlying OS error.
func Wrap(kind Kind, op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Logicf builds a KindLogic error from a format string. Logic errors have
// no path or cause to attach; the message is the diagnosis.
func Logicf(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindLogic, Err: fmt.Errorf(format, args...)}
}
