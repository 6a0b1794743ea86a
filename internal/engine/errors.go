package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is returned by reductions that are undefined over zero
// records, such as the mean.
var ErrEmptyDataset = errors.New("empty dataset")

// SourceUnreadableError means the source file could not be opened or
// read at all. The load aborts; no partial dataset is returned.
type SourceUnreadableError struct {
	Path string
	Err  error
}

func (e *SourceUnreadableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("emissions source unreadable: %v", e.Err)
	}
	return fmt.Sprintf("emissions source %q unreadable: %v", e.Path, e.Err)
}

func (e *SourceUnreadableError) Unwrap() error { return e.Err }

// MissingColumnsError reports required columns absent from the source
// header, by logical name.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// DateParseError means the date column as a whole does not match a
// supported day/month/year layout. One bad value is a systemic format
// mismatch and aborts the entire load.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date value %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }
