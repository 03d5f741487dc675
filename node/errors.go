package node

import (
	"fmt"
	"runtime"
)

// Error is the condition raised by the default error handler for fatal
// misuse of the tree: out-of-range access, strict accessor mismatches,
// fetches of missing paths, and schema-inconsistent writes.
type Error struct {
	Message string
	File    string
	Line    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// ErrorHandler receives fatal-error reports. The handler may log,
// abort, or panic; if it returns normally the library panics anyway,
// since the failed operation cannot produce a result.
type ErrorHandler func(message, file string, line int)

var errorHandler ErrorHandler = defaultErrorHandler

// SetErrorHandler installs a process-wide replacement for the default
// fatal-error handler. Passing nil restores the default. Installation is
// not synchronized; install once at process start.
func SetErrorHandler(h ErrorHandler) {
	if h == nil {
		h = defaultErrorHandler
	}
	errorHandler = h
}

func defaultErrorHandler(message, file string, line int) {
	panic(&Error{Message: message, File: file, Line: line})
}

// Fatalf routes a fatal condition through the installed handler on
// behalf of a caller that detected structurally impossible input. It
// does not return.
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	errorHandler(msg, file, line)
	panic(&Error{Message: msg, File: file, Line: line})
}

// fatalf routes a fatal condition through the installed handler. It does
// not return.
func fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	errorHandler(msg, file, line)
	// A handler that logs and returns leaves the operation with no value
	// to produce.
	panic(&Error{Message: msg, File: file, Line: line})
}
