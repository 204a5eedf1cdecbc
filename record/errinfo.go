package record

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const maxStackDepth = 32

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// ErrorInfoFrom converts err into an ErrorInfo. When err (or an error it
// wraps) carries a github.com/pkg/errors stack, that stack is used;
// otherwise the stack of the caller is captured, skipping skip frames above
// ErrorInfoFrom. A nil error yields nil.
func ErrorInfoFrom(err error, skip int) *ErrorInfo {
	if err == nil {
		return nil
	}
	info := &ErrorInfo{
		Name:    errorName(err),
		Message: safeErrorString(err),
	}
	if stack, ok := errorStack(err); ok {
		info.Stack = stack
	} else {
		info.Stack = callerStack(skip + 2)
	}
	return info
}

// safeErrorString returns err.Error(), or a placeholder when Error panics,
// as it does for a typed nil pointer with a value-dereferencing method.
func safeErrorString(err error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("[error message unavailable: %T: %v]", err, r)
		}
	}()
	return err.Error()
}

// errorStack returns the pkg/errors stack carried by err, if any. Unwrap or
// StackTrace methods that panic count as no stack.
func errorStack(err error) (stack string, ok bool) {
	defer func() {
		if recover() != nil {
			stack, ok = "", false
		}
	}()
	var st stackTracer
	if !errors.As(err, &st) {
		return "", false
	}
	return strings.TrimLeft(fmt.Sprintf("%+v", st.StackTrace()), "\n"), true
}

// errorName returns the bare type name of err, e.g. "PathError".
func errorName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

func callerStack(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
