package settings

import (
	"errors"
	"fmt"
)

// Error kinds returned by Store. Match them with errors.Is.
var (
	ErrIO     = errors.New("settings i/o failure")
	ErrDecode = errors.New("settings file is not a valid trial record")
)

// IOError is a filesystem failure while reading, creating or replacing the
// settings file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("settings: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// DecodeError means the settings file exists but does not hold a trial record.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("settings: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
