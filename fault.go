package interop

import "fmt"

// Fault is the panic value raised when a caller breaks the contract of this
// package, such as decoding an Interop through a mid-end other than the one
// that built it, or when a mid-end reports an outcome that its fixed
// in-memory, unbounded configuration rules out.
//
// A Fault is never returned as an error.
type Fault struct {
	Op     string
	Reason string
	Err    error
}

func newFault(op string, reason string, err error) *Fault {
	return &Fault{
		Op:     op,
		Reason: reason,
		Err:    err,
	}
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("interop: %s %s (%s)", f.Op, f.Reason, f.Err.Error())
	}
	return fmt.Sprintf("interop: %s %s", f.Op, f.Reason)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
