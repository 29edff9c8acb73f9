package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")
	for _, v := range []struct {
		err   error
		kind  Kind
		fatal bool
	}{
		{New(NotFound, "select", base), NotFound, true},
		{fmt.Errorf("run: %w", New(TransferFailure, "copy", base)), TransferFailure, true},
		{New(PartialDeleteFailure, "prune", base), PartialDeleteFailure, false},
		{base, Unknown, true},
		{nil, Unknown, false},
	} {
		if got := KindOf(v.err); got != v.kind {
			t.Errorf("KindOf(%v) = %v, want %v", v.err, got, v.kind)
		}
		if got := IsFatal(v.err); got != v.fatal {
			t.Errorf("IsFatal(%v) = %v, want %v", v.err, got, v.fatal)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	base := errors.New("underlying")
	err := New(MaxRetriesExceeded, "poll", base)

	if err.Error() != "poll: underlying" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("fault error should wrap the underlying error")
	}
	if New(NotFound, "x", nil) != nil {
		t.Error("New with nil error should return nil")
	}
}
