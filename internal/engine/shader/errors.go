package shader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDestroyed is returned when a destroyed program is used.
	ErrDestroyed = errors.New("shader: program destroyed")

	// ErrEmptySource is wrapped by a CompileError for blank stage text.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrStageMismatch is returned when sources are passed in the wrong slots.
	ErrStageMismatch = errors.New("shader: stage mismatch")

	// ErrNilValue is returned when a nil Value is assigned to a uniform.
	ErrNilValue = errors.New("shader: nil uniform value")
)

// Legacy numeric codes for construction failures.
const (
	CodeOK              = 0
	CodeVertexCompile   = 1
	CodeFragmentCompile = 2
	CodeLink            = 3
	CodeOther           = 4
)

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

func (e *CompileError) Unwrap() error { return e.Err }

// Code returns CodeVertexCompile or CodeFragmentCompile.
func (e *CompileError) Code() int {
	if e.Stage == Fragment {
		return CodeFragmentCompile
	}
	return CodeVertexCompile
}

// LinkError reports stages that compiled but failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link: %s", strings.TrimSpace(e.Log))
}

// Code returns CodeLink.
func (e *LinkError) Code() int { return CodeLink }

// ErrorCode maps a construction error to its numeric code.
func ErrorCode(err error) int {
	if err == nil {
		return CodeOK
	}
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return compileErr.Code()
	}
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code()
	}
	return CodeOther
}

// DiagnosticLog returns the driver log carried by err, if any.
func DiagnosticLog(err error) (string, bool) {
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return compileErr.Log, true
	}
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Log, true
	}
	return "", false
}
