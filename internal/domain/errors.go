package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a year lies outside the dataset's year domain.
	ErrOutOfRange = errors.New("year out of range")

	// ErrUnknownCause is returned when a cause label is not in the dataset's vocabulary.
	ErrUnknownCause = errors.New("unknown cause")

	// ErrEmptyDataset is returned when a year domain is required but no incidents were loaded.
	ErrEmptyDataset = errors.New("dataset has no incidents")
)

// OutOfRangeError reports a rejected year together with the valid domain.
type OutOfRangeError struct {
	Year int
	Min  int
	Max  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("year %d outside dataset domain [%d, %d]", e.Year, e.Min, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// UnknownCauseError reports a cause label that never occurs in the dataset.
type UnknownCauseError struct {
	Cause string
}

func (e *UnknownCauseError) Error() string {
	return fmt.Sprintf("cause %q not present in dataset", e.Cause)
}

func (e *UnknownCauseError) Unwrap() error { return ErrUnknownCause }
