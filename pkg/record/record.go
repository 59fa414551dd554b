// Package record normalizes raw ELN export documents into flat field maps
// the graph builder consumes. Structural variation in the export (nested
// value/unit objects vs. plain scalars) is resolved here, once, into tagged
// field values so downstream code never re-inspects raw JSON shapes.
package record

import (
	"errors"
	"fmt"
)

// ValueKind tags the literal datatype of a normalized field value
type ValueKind uint8

const (
	// ValueNone marks a field carrying no literal value (unit-only entries)
	ValueNone ValueKind = iota
	// ValueString is a plain string literal
	ValueString
	// ValueNumber is a numeric literal
	ValueNumber
)

// FieldValue is one normalized field: a scalar, or a measurement when a unit
// token is attached.
type FieldValue struct {
	Kind   ValueKind
	Text   string  // set when Kind == ValueString
	Number float64 // set when Kind == ValueNumber
	Unit   string  // empty for plain scalars
}

// IsMeasurement reports whether the field carries a unit token
func (f FieldValue) IsMeasurement() bool {
	return f.Unit != ""
}

// Scalar creates a plain string field value
func Scalar(text string) FieldValue {
	return FieldValue{Kind: ValueString, Text: text}
}

// NumberScalar creates a plain numeric field value
func NumberScalar(n float64) FieldValue {
	return FieldValue{Kind: ValueNumber, Number: n}
}

// Measurement creates a numeric field value with a unit token
func Measurement(n float64, unit string) FieldValue {
	return FieldValue{Kind: ValueNumber, Number: n, Unit: unit}
}

// Record is one normalized export entry: the record's unique identifier plus
// a flat field map. Fields not referenced by any node template are preserved
// but never consulted.
type Record struct {
	Source string // archive member the record came from
	ElabID string
	Fields map[string]FieldValue
}

// Field returns the named field and whether it is present
func (r *Record) Field(name string) (FieldValue, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Sentinel errors for programmatic matching
var (
	ErrMissingID = errors.New("record has no elabid")
	ErrNotObject = errors.New("record is not a JSON object")
)

// NormalizationError reports a single unusable record. It is recovered
// locally: the batch skips the record and continues.
type NormalizationError struct {
	Source string
	Cause  error
}

// Error implements the error interface
func (e *NormalizationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("normalize record %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("normalize record: %v", e.Cause)
}

// Unwrap returns the underlying cause for error chain support
func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's cause
func (e *NormalizationError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
