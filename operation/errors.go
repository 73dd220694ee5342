package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the only kind of error returned by this package.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrNoSteps      = fmt.Errorf("%w: the steps cannot be nil or empty", ErrInvalidArgument)
	ErrBothNil      = fmt.Errorf("%w: both operations to be combined are nil", ErrInvalidArgument)
	ErrNilOperation = fmt.Errorf("%w: the operation to be combined cannot be nil", ErrInvalidArgument)
)
