package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/JoeySoprano420/Trion/types"
)

// Reporter accumulates diagnostics for one pass. It never panics and never
// aborts the stage that owns it.
type Reporter struct {
	Errors   []*Diagnostic
	Warnings []*Diagnostic
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Report(kind Kind, pos types.Position, format string, args ...interface{}) *Diagnostic {
	d := Errorf(kind, pos, format, args...)
	r.Errors = append(r.Errors, d)
	return d
}

func (r *Reporter) Add(d *Diagnostic) {
	r.Errors = append(r.Errors, d)
}

func (r *Reporter) Warn(pos types.Position, format string, args ...interface{}) *Diagnostic {
	d := Errorf(RuntimeFault, pos, format, args...)
	r.Warnings = append(r.Warnings, d)
	return d
}

func (r *Reporter) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Reporter) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *Reporter) Clear() {
	r.Errors = nil
	r.Warnings = nil
}

// Merge appends other's diagnostics after r's, preserving order.
func (r *Reporter) Merge(other *Reporter) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Err returns nil when no errors were reported, otherwise an error listing
// all of them.
func (r *Reporter) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ReportError{Diagnostics: r.Errors}
}

func (r *Reporter) Print(w io.Writer) {
	for _, d := range r.Errors {
		fmt.Fprintln(w, d.Error())
	}
}

func (r *Reporter) PrintWarnings(w io.Writer) {
	for _, d := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s. %s\n", d.Message, d.Location)
	}
}

type ReportError struct {
	Diagnostics []*Diagnostic
}

func (e *ReportError) Error() string {
	var lines []string
	for _, d := range e.Diagnostics {
		lines = append(lines, d.Error())
	}
	return strings.Join(lines, "\n")
}
