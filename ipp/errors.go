package ipp

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAttribute is matched by every *MalformedAttributeError.
	ErrMalformedAttribute = errors.New("malformed attribute")
	// ErrTruncatedMessage is matched by every *TruncatedMessageError.
	ErrTruncatedMessage = errors.New("truncated message")

	// ErrValueLength means a declared length overruns the buffer or does not
	// match the fixed size of the value type.
	ErrValueLength = errors.New("declared length does not fit the value")
	// ErrUnknownTag means the value tag is not one this package decodes.
	ErrUnknownTag = errors.New("unknown value tag")
	// ErrBadValue means the bytes do not form a valid value or entry sequence.
	ErrBadValue = errors.New("bad value")
	// ErrDelimiterTag means a group delimiter appeared where an attribute
	// entry was expected.
	ErrDelimiterTag = errors.New("delimiter tag where attribute expected")
)

// MalformedAttributeError reports an attribute entry that could not be decoded.
// Offset is the position of the entry's tag byte within the buffer.
type MalformedAttributeError struct {
	Offset int
	Tag    Tag
	Name   string
	Err    error
}

func (e *MalformedAttributeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("ipp: malformed attribute %q (%s) at offset %d: %v", e.Name, e.Tag, e.Offset, e.Err)
	}
	return fmt.Sprintf("ipp: malformed attribute (%s) at offset %d: %v", e.Tag, e.Offset, e.Err)
}

func (e *MalformedAttributeError) Unwrap() []error {
	return []error{ErrMalformedAttribute, e.Err}
}

// TruncatedMessageError reports a message that ended before its
// end-of-attributes tag.
type TruncatedMessageError struct {
	Offset int
	Len    int
}

func (e *TruncatedMessageError) Error() string {
	return fmt.Sprintf("ipp: truncated message: %d bytes, need more at offset %d", e.Len, e.Offset)
}

func (e *TruncatedMessageError) Unwrap() error {
	return ErrTruncatedMessage
}
