package logger

// ErrorOrData is the second argument of the error-severity entry points. It
// is either an error (Err) or a structured payload (Data).
//
// Binding rules:
//   - Err(e): the record's error is e and the remaining arguments become
//     the record's data.
//   - Data(d): the record has no error, its data is d and the remaining
//     arguments are ignored.
//   - nil: the record has no error and the remaining arguments become data.
type ErrorOrData interface {
	bind(rest []any) (any, error)
}

type errArg struct{ err error }

type dataArg struct{ v any }

// Err marks err as the error of an Error call.
func Err(err error) ErrorOrData { return errArg{err: err} }

// Data marks v as the payload of an Error call made without an error.
func Data(v any) ErrorOrData { return dataArg{v: v} }

func (a errArg) bind(rest []any) (any, error) { return collapse(rest), a.err }

func (a dataArg) bind([]any) (any, error) { return a.v, nil }

func bind(arg ErrorOrData, rest []any) (any, error) {
	if arg == nil {
		return collapse(rest), nil
	}
	return arg.bind(rest)
}

// collapse turns the variadic data of an entry point into one payload: no
// argument is nil, one is itself, several are kept as a slice.
func collapse(data []any) any {
	switch len(data) {
	case 0:
		return nil
	case 1:
		return data[0]
	default:
		return append([]any(nil), data...)
	}
}
