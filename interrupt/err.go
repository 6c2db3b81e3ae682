package interrupt

import (
	"errors"

	"github.com/ezrec/rasmvm/translate"
)

var f = translate.From

var (
	// Script errors
	ErrScriptUnbound  = errors.New(f("script not bound to a machine"))
	ErrAddressInvalid = errors.New(f("address invalid"))
)

// ErrScriptEntry indicates a script that does not define a callable
// interrupt() entry point.
type ErrScriptEntry string

func (err ErrScriptEntry) Error() string {
	return f("script %v: interrupt() missing", string(err))
}
