/*
PURPOSE:
  Typed errors shared by the encoder, decoder and runner.

REQUIREMENTS:
  User-specified:
  - Callers can tell validation, I/O and table-decoding failures apart.

  Implementation-discovered:
  - Marker errors carry the table and marker text for diagnosis.

ARCHITECTURE INTEGRATION:
  - Used by: internal/script, internal/result, internal/engine

ERROR HANDLING:
  - Use errors.As on the pointer types.

IMPLEMENTATION RULES:
  - Pointer receivers for Error().
  - Line numbers are stored zero-based and printed one-based.

USAGE:
  var verr *model.ValidationError
  if errors.As(err, &verr) { ... }

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/result/document.go
  - internal/script/validate.go

MAINTENANCE:
  - Add a type rather than overloading Reason strings.
*/

package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a parameter that is missing or outside its
// declared range. It is raised before any file is written.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// IOError reports a failed read or write of an engine artifact.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// MarkerNotFoundError reports a marker with no matching line.
type MarkerNotFoundError struct {
	Table  string
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("table %s: marker %q not found", e.Table, e.Marker)
}

// AmbiguousMarkerError reports a marker matching more than one line.
// Lines holds the zero-based indexes of every match.
type AmbiguousMarkerError struct {
	Table  string
	Marker string
	Lines  []int
}

func (e *AmbiguousMarkerError) Error() string {
	s := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		s[i] = fmt.Sprint(l + 1)
	}
	return fmt.Sprintf("table %s: marker %q matches %d lines (%s)", e.Table, e.Marker, len(e.Lines), strings.Join(s, ", "))
}

// MalformedTableError reports a data row that is not a row of the table.
// Line is zero-based.
type MalformedTableError struct {
	Table  string
	Line   int
	Reason string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("table %s: line %d: %s", e.Table, e.Line+1, e.Reason)
}

// EmptyTableError reports a data range with no rows, including a footer
// found above its header. First and Last are the zero-based bounds.
type EmptyTableError struct {
	Table string
	First int
	Last  int
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("table %s: no data rows between lines %d and %d", e.Table, e.First+1, e.Last+1)
}
