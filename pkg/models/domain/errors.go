package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord matches every *InvalidRecordError via errors.Is.
var ErrInvalidRecord = errors.New("invalid order line")

// InvalidRangeError is returned when a date range starts after it ends.
type InvalidRangeError struct {
	Start Date
	End   Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s is after end %s", e.Start, e.End)
}

// InvalidRecordError describes an order line that violates the input contract.
type InvalidRecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("order line %d: %s %s", e.Index, e.Field, e.Reason)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}
