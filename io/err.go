package io

import (
	"errors"

	"github.com/ezrec/rasmvm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelMissing = errors.New(f("channel missing"))
)
