package control

import (
	"errors"
	"fmt"
)

// Error taxonomy for every command and query. Validators detect ErrNotFound,
// ErrOutOfRange and ErrUnsupported before any write is attempted;
// ErrUpstream can only occur during or after a write and is surfaced once,
// never retried.
var (
	// ErrNotFound indicates an unknown light/group/scene id or an unknown
	// preset or effect name.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange indicates a brightness, RGB or temperature value
	// outside its accepted bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrUnsupported indicates the target device lacks the capability the
	// command needs.
	ErrUnsupported = errors.New("not supported")

	// ErrUpstream indicates the bridge call itself failed or returned an
	// error payload.
	ErrUpstream = errors.New("bridge request failed")
)

func upstream(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
