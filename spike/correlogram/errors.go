package correlogram

import (
	"errors"
	"fmt"
)

// Errors returned by correlogram functions.
var (
	ErrInvalidParameter   = errors.New("correlogram: invalid parameter")
	ErrUnsupportedMethod  = errors.New("correlogram: unsupported method")
	ErrBackendUnavailable = errors.New("correlogram: accelerated backend unavailable")
	ErrShapeMismatch      = errors.New("correlogram: tensor shape mismatch")
	ErrUnknownUnit        = errors.New("correlogram: unknown unit")
)

// ParamError reports the parameter that violated its constraint.
// It matches ErrInvalidParameter with errors.Is.
type ParamError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("correlogram: %s %v: %s", e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}
