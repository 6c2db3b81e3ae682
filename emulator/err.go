package emulator

import (
	"errors"

	"github.com/ezrec/rasmvm/translate"
)

var f = translate.From

var (
	ErrProgramSize = errors.New(f("program larger than memory"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  uint8
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip 0x%02x %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
