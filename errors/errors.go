// Package errors builds error values that remember where they were created.
//
// NOTE: This package mirrors the standard "errors" module for New and adds
// Wrap/Wrapf for attaching context. Code in this repository should use it
// instead of the standard package.
package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"runtime"
	"sync"
)

// StackError is an error carrying a message, an optional wrapped error and
// the call stack captured when it was built.
type StackError interface {
	error

	// GetMessage returns this error's own message, without the inner error
	// and without the stack.
	GetMessage() string

	// GetInner returns the wrapped error, or nil.
	GetInner() error

	// Unwrap makes StackError values work with the standard errors.Is/As.
	Unwrap() error

	// GetStack formats the captured stack one frame per two lines:
	//
	//	main.run
	//		/src/cmd/hellodemo/main.go:42 +0x1f3
	GetStack() string
}

type StackFrame struct {
	PC         uintptr
	FuncName   string
	File       string
	LineNumber int
}

type baseError struct {
	msg   string
	inner error

	stack       []uintptr
	framesOnce  sync.Once
	stackFrames []StackFrame
}

func New(msg string) StackError {
	return newError(nil, msg)
}

// Same as New, but with fmt.Printf-style parameters.
func Newf(format string, args ...interface{}) StackError {
	return newError(nil, fmt.Sprintf(format, args...))
}

// Wrap returns a StackError with msg as context around err.
func Wrap(err error, msg string) StackError {
	return newError(err, msg)
}

// Same as Wrap, but with fmt.Printf-style parameters.
func Wrapf(err error, format string, args ...interface{}) StackError {
	return newError(err, fmt.Sprintf(format, args...))
}

// newError must be called directly by the exported constructors; the skip
// count below drops runtime.Callers, newError and the constructor itself.
func newError(err error, msg string) *baseError {
	stack := make([]uintptr, 64)
	n := runtime.Callers(3, stack)
	return &baseError{
		msg:   msg,
		inner: err,
		stack: stack[:n],
	}
}

func (e *baseError) Error() string {
	return fullMessage(e, true)
}

func (e *baseError) GetMessage() string {
	return e.msg
}

func (e *baseError) GetInner() error {
	return e.inner
}

func (e *baseError) Unwrap() error {
	return e.inner
}

func (e *baseError) frames() []StackFrame {
	e.framesOnce.Do(func() {
		frames := runtime.CallersFrames(e.stack)
		for {
			frame, more := frames.Next()
			e.stackFrames = append(e.stackFrames, StackFrame{
				PC:         frame.PC,
				FuncName:   frame.Function,
				File:       frame.File,
				LineNumber: frame.Line,
			})
			if !more {
				break
			}
		}
	})
	return e.stackFrames
}

func (e *baseError) GetStack() string {
	buf := bytes.NewBuffer(make([]byte, 0, 256))
	for _, frame := range e.frames() {
		fmt.Fprintf(buf, "%s\n\t%s:%d +0x%x\n",
			frame.FuncName, frame.File, frame.LineNumber, frame.PC)
	}
	return buf.String()
}

// GetMessage returns the chain of messages of err without any stack trace.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if se, ok := err.(StackError); ok {
		return fullMessage(se, false)
	}
	return err.Error()
}

// fullMessage joins the messages of e and every error it wraps, one per line.
// With includeStack set the stack of the innermost StackError is appended.
func fullMessage(e StackError, includeStack bool) string {
	buf := bytes.NewBuffer(make([]byte, 0, 256))
	last := e
	for cur := e; ; {
		last = cur
		buf.WriteString(cur.GetMessage())

		inner := cur.GetInner()
		if inner == nil {
			break
		}
		buf.WriteString("\n")
		next, ok := inner.(StackError)
		if !ok {
			buf.WriteString(inner.Error())
			break
		}
		cur = next
	}
	if includeStack {
		buf.WriteString("\nORIGINAL STACK TRACE:\n")
		buf.WriteString(last.GetStack())
	}
	return buf.String()
}

// RootError peels wrapped errors until one wraps nothing.
func RootError(err error) error {
	for i := 0; i < 20; i++ {
		inner := stderrors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
	return fmt.Errorf("too many iterations: %T", err)
}

// IsError reports whether err, or the root it wraps, matches errConst by
// identity or by message.
func IsError(err, errConst error) bool {
	if stderrors.Is(err, errConst) {
		return true
	}
	root := RootError(err)
	if root == nil || errConst == nil {
		return root == errConst
	}
	return root.Error() == errConst.Error()
}
