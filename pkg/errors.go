package eventlist

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is matched by every InvalidRangeError.
var ErrInvalidRange = errors.New("invalid range")

// InvalidRangeError is returned when a range has max <= min.
type InvalidRangeError struct {
	Min float64
	Max float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: max (%g) must be greater than min (%g)", e.Max, e.Min)
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// UnknownSortTypeError is returned when decoding a sort order name that does
// not exist.
type UnknownSortTypeError struct {
	Name string
}

func (e *UnknownSortTypeError) Error() string {
	return fmt.Sprintf("unknown sort type %q", e.Name)
}

// SplitterOrderError reports the first interval of a splitter that starts
// before the previous one ends or whose stop precedes its start.
type SplitterOrderError struct {
	Position int
	Start    int64
	Stop     int64
}

func (e *SplitterOrderError) Error() string {
	return fmt.Sprintf("splitter interval %d [%d, %d) is out of order", e.Position, e.Start, e.Stop)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}

// ErrWriteDataset represents an error when writing rows to a dataset.
type ErrWriteDataset struct {
	DatasetName string
	Err         error
}

func (e *ErrWriteDataset) Error() string {
	return fmt.Sprintf("error writing dataset %q: %v", e.DatasetName, e.Err)
}

func (e *ErrWriteDataset) Unwrap() error {
	return e.Err
}

// ErrReadEvent represents an error decoding a record from an event file.
type ErrReadEvent struct {
	Index uint64
	Err   error
}

func (e *ErrReadEvent) Error() string {
	return fmt.Sprintf("error reading event %d: %v", e.Index, e.Err)
}

func (e *ErrReadEvent) Unwrap() error {
	return e.Err
}
