package cli

import "fmt"

// argError wraps a bad-argument condition so Execute maps it to exit code 2
// instead of the generic I/O-error code 1.
type argError struct {
	msg string
}

func (e *argError) Error() string  { return e.msg }
func (e *argError) UsageError()    {}
func newArgError(format string, args ...any) *argError {
	return &argError{msg: fmt.Sprintf(format, args...)}
}
