// Package debug has helpers producing human readable dumps for logs and debug
// reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w      *strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}, indent: "  "}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "label: value" with value quoted unless empty.
func (tw *TreeWriter) Field(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	tw.w.WriteString(strings.Repeat(tw.indent, depth))
}
