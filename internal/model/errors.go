package model

import "fmt"

// StructureError reports unparseable XML or a missing mandatory field.
// When it is returned no partial document exists.
type StructureError struct {
	Field   string
	Message string
	Cause   error
}

func (e *StructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("structure error at %s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("structure error at %s: %s", e.Field, e.Message)
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}

// NewStructureError creates a new structure error
func NewStructureError(field, message string, cause error) *StructureError {
	return &StructureError{Field: field, Message: message, Cause: cause}
}

// FormatError reports a malformed value in a field that must be
// well-formed, such as the issue date that drives output file names.
type FormatError struct {
	Field   string
	Value   string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error at %s: %s (value=%q)", e.Field, e.Message, e.Value)
}

// NewFormatError creates a new format error
func NewFormatError(field, value, message string) *FormatError {
	return &FormatError{Field: field, Value: value, Message: message}
}

// StampError reports a missing or unencodable stamp payload. For document
// types that carry a verification barcode this is fatal; the caller decides
// between rejecting the document and substituting a placeholder.
type StampError struct {
	Message string
	Cause   error
}

func (e *StampError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stamp encoding failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("stamp encoding failed: %s", e.Message)
}

func (e *StampError) Unwrap() error {
	return e.Cause
}

// NewStampError creates a new stamp error
func NewStampError(message string, cause error) *StampError {
	return &StampError{Message: message, Cause: cause}
}

// RenderError reports a template or rasterization failure. No partial
// document bytes are ever emitted alongside it.
type RenderError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed [%s]: %s", e.Stage, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(stage, message string, cause error) *RenderError {
	return &RenderError{Stage: stage, Message: message, Cause: cause}
}
