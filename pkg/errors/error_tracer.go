package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ErrorTracer is an error with its own message, the wrapped cause carrying a
// stack trace, and the context (table, format, source) it failed in.
type ErrorTracer struct {
	Message string
	Err     error
	Context []ContextField
}

// ContextField is one key/value of tracer context, e.g. table=Trades.
type ContextField struct {
	Key   string
	Value string
}

// NewTracer creates a new ErrorTracer with the provided message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError creates a new ErrorTracer from an existing error, keeping its
// message and stack trace.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// StackTracer is an interface that requires a StackTrace method.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap sets the cause, attaching a stack trace when it has none.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}
	return e
}

// With appends a context field.
func (e *ErrorTracer) With(key, value string) *ErrorTracer {
	e.Context = append(e.Context, ContextField{Key: key, Value: value})
	return e
}

// ForTable records the table being processed.
func (e *ErrorTracer) ForTable(name string) *ErrorTracer {
	return e.With("table", name)
}

// ForFormat records the archive format being produced.
func (e *ErrorTracer) ForFormat(format string) *ErrorTracer {
	return e.With("format", format)
}

// ForSource records the venue file being read.
func (e *ErrorTracer) ForSource(source string) *ErrorTracer {
	return e.With("source", source)
}

// StackTrace returns the stack trace of the cause, nil when it has none.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if st, ok := e.Err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// ContextOf collects the context of every tracer in the chain of err,
// outermost first.
func ContextOf(err error) []ContextField {
	var fields []ContextField
	for err != nil {
		if tracer, ok := err.(*ErrorTracer); ok {
			fields = append(fields, tracer.Context...)
		}
		err = stderrors.Unwrap(err)
	}
	return fields
}
