// core/rindex/errors.go
//
// Load failures are fatal and surfaced to the caller (spec.md §7);
// the query path itself is infallible and has no error channel.
package rindex

import "fmt"

// Kind classifies a load failure per spec.md §7.
type Kind int

const (
	// LoadIO: cannot open, stat, or read an expected input file.
	LoadIO Kind = iota
	// LoadFormat: file size or layout inconsistent with expectations.
	LoadFormat
	// InvariantViolation: loaded data fails a structural invariant
	// (thresholds out of range, F not monotone, etc.); signals a
	// corrupt index.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case LoadIO:
		return "LoadIO"
	case LoadFormat:
		return "LoadFormat"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LoadError reports a fatal failure while loading or validating an
// index. Wrap with fmt.Errorf("...: %w", err) when propagating.
type LoadError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *LoadError) Unwrap() error { return e.Err }
