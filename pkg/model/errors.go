package model

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// A required field is absent or has the wrong shape
	MalformedInput ErrorKind = iota + 1
	// A lecture, linked-section or meeting-type id is not present in the catalog
	UnknownReference
	// A begin/end clock value is not a valid HHMM encoding
	UnparsableTime
)

var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnknownReference = errors.New("unknown reference")
	ErrUnparsableTime   = errors.New("unparsable time")
)

func (kind ErrorKind) sentinel() error {
	switch kind {
	case MalformedInput:
		return ErrMalformedInput
	case UnknownReference:
		return ErrUnknownReference
	case UnparsableTime:
		return ErrUnparsableTime
	default:
		return nil
	}
}

func (kind ErrorKind) String() string {
	if sentinel := kind.sentinel(); sentinel != nil {
		return sentinel.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

// ParseError reports which validation step rejected the catalog and where.
// It matches ErrMalformedInput, ErrUnknownReference or ErrUnparsableTime through errors.Is.
type ParseError struct {
	Kind      ErrorKind
	SectionId uint64
	Field     string
	Err       error

	sectionScoped bool
}

func newParseError(kind ErrorKind, field string, err error) *ParseError {
	return &ParseError{Kind: kind, Field: field, Err: err}
}

func newSectionError(kind ErrorKind, sectionId uint64, field string, err error) *ParseError {
	return &ParseError{Kind: kind, SectionId: sectionId, Field: field, Err: err, sectionScoped: true}
}

// Whether SectionId identifies the offending section
func (err *ParseError) HasSection() bool {
	return err.sectionScoped
}

func (err *ParseError) Error() string {
	var builder strings.Builder
	builder.WriteString(err.Kind.String())
	if err.sectionScoped {
		fmt.Fprintf(&builder, ": section %d", err.SectionId)
	}
	if err.Field != "" {
		fmt.Fprintf(&builder, ": field %q", err.Field)
	}
	if err.Err != nil {
		fmt.Fprintf(&builder, ": %v", err.Err)
	}
	return builder.String()
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Is(target error) bool {
	return target != nil && target == err.Kind.sentinel()
}
