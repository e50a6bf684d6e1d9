package har

import (
	"errors"
	"fmt"
)

// ErrFormat matches every FormatError via errors.Is
var ErrFormat = errors.New("invalid HAR format")

// FormatError reports an input document that is not a usable HAR
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid HAR format: %s: %v", e.Reason, e.Err)
	}
	return "invalid HAR format: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFormat) match any FormatError
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
