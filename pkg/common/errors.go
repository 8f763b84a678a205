package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// IOError reports a file that is missing or could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not read %s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FormatError reports file content that does not parse as the expected number.
type FormatError struct {
	Path  string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid value %q: %s", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid value %q in %s: %s", e.Value, e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err or any error it wraps is an *IOError.
func IsIOError(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}

// IsFormatError reports whether err or any error it wraps is a *FormatError.
func IsFormatError(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

type ErrorCollector struct {
	errs []error
}

// New adds err to the collection. Nil errors are ignored.
func (c *ErrorCollector) New(err error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err)
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.errs) > 0
}

func (c *ErrorCollector) Errors() []error {
	return c.errs
}

// Combine returns nil when nothing was collected, the error itself when one
// was collected and a joined error otherwise. A joined error is a plain
// message: IsIOError and IsFormatError report false for it, use Errors to
// classify the individual errors.
func (c *ErrorCollector) Combine() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	default:
		return errors.New(c.String())
	}
}

func (c *ErrorCollector) String() string {
	result := ""
	for i, err := range c.errs {
		result += err.Error()
		if i != len(c.errs)-1 {
			result += "; "
		}
	}
	return result
}
