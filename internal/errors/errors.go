// Package errors provides error handling for classgen.
//
// This package re-exports github.com/cockroachdb/errors so that every layer
// wraps, annotates and inspects errors the same way:
//
//	// Wrap with context
//	if err := read(path); err != nil {
//	    return errors.Wrapf(err, "failed to read base class %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check the --baseclass paths")
//
// The sentinels below mirror the generator's error taxonomy. Wrap them with
// errors.Mark or errors.Wrap and test with errors.Is.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
	Mark        = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenDetails = crdb.FlattenDetails
)

var (
	// ErrStructural marks a malformed specification: missing class name,
	// bad section marker, unknown visibility, wrong field count.
	ErrStructural = New("structural spec error")

	// ErrBaseClass marks a base-class file that could not be read or holds
	// no class declaration. Always fatal for the run.
	ErrBaseClass = New("base class error")

	// ErrValidation marks a failed formatter, compiler or syntax check.
	// Never fatal: generated files stay on disk.
	ErrValidation = New("validation error")
)

// Structuralf returns a new error marked as ErrStructural.
func Structuralf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrStructural)
}

// BaseClass wraps err with the offending path and marks it as ErrBaseClass.
func BaseClass(err error, path string) error {
	return Mark(Wrapf(err, "base class %s", path), ErrBaseClass)
}

// Validation wraps err and marks it as ErrValidation.
func Validation(err error, step string) error {
	return Mark(Wrapf(err, "%s failed", step), ErrValidation)
}

// IsFatal reports whether err must stop a generation run.
// Validation errors never are.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !Is(err, ErrValidation)
}
