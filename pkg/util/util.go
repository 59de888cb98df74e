package util

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// Message returns the wrapped message without the underlying cause.
func (e *Error) Message() string {
	return e.msg
}

// ErrorCode returns the code of the outermost *Error in err's chain, or
// ErrInternalServerError when err carries no code.
func ErrorCode(err error) error {
	var ierr *Error
	if errors.As(err, &ierr) && ierr.code != nil {
		return ierr.code
	}
	return ErrInternalServerError
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrConflict            = errors.New("your Item already exist")
	ErrBadParamInput       = errors.New("given Param is not valid")
)

var MessageInternalServerError string = "internal server error"

func SecondsToMinutes(seconds float64) float64 {
	return seconds / 60
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func StopConcurrentOperation(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Factorial returns n! saturated at math.MaxUint64.
func Factorial(n int) uint64 {
	f := uint64(1)
	for i := 2; i <= n; i++ {
		if f > math.MaxUint64/uint64(i) {
			return math.MaxUint64
		}
		f *= uint64(i)
	}
	return f
}
