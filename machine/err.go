package machine

import (
	"errors"

	"github.com/ezrec/rasmvm/translate"
)

var f = translate.From

var (
	ErrRegisterInvalid = errors.New(f("register invalid"))
)
