// Package fault classifies the failures of an archive run.
//
// Every error that ends a pipeline stage is wrapped in *Error with a Kind, so
// the caller can tell fatal conditions from the non-fatal partial delete.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of an error.
type Kind int

const (
	Unknown Kind = iota
	// NotFound: no snapshot matched the selection, or the restore job is gone.
	NotFound
	// MaxRetriesExceeded: the delivery URL never appeared within the bound.
	MaxRetriesExceeded
	// TransferFailure: the copy tool failed or could not be started.
	TransferFailure
	// PartialDeleteFailure: some keys of a retention batch were not deleted.
	PartialDeleteFailure
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case MaxRetriesExceeded:
		return "max retries exceeded"
	case TransferFailure:
		return "transfer failure"
	case PartialDeleteFailure:
		return "partial delete failure"
	}
	return "unknown"
}

// Error attaches a Kind and the failing operation to an underlying error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with kind. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsFatal reports whether err must abort the run. Only a partial delete
// failure lets the run complete.
func IsFatal(err error) bool {
	return err != nil && KindOf(err) != PartialDeleteFailure
}
