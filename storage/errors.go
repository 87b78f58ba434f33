package storage

import "fmt"

// DataLoadError reports a missing, unreadable or malformed input file.
// Line is the 1-based line of the offending record, or 0 when the error is not
// tied to one record.
type DataLoadError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "load " + e.Path
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
