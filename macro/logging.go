package macro

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Access tells which side of a property produced a log entry.
type Access string

const (
	AccessGet Access = "get"
	AccessSet Access = "set"
)

// LoggerFunc receives DeprecationEntry events.
type LoggerFunc func(DeprecationEntry)

// DeprecationEntry describes a single access to a deprecated alias.
type DeprecationEntry struct {
	Class    string
	Property string
	Target   string
	Access   Access
	Message  string
	ID       string
	Until    string
}

// String renders the entry as a single human readable line.
func (e DeprecationEntry) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s.%s is deprecated, use %s instead", e.Class, e.Property, e.Target)

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	var meta []string
	if e.ID != "" {
		meta = append(meta, "id: "+e.ID)
	}

	if e.Until != "" {
		meta = append(meta, "until: "+e.Until)
	}

	if len(meta) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(meta, ", "))
		b.WriteString("]")
	}

	return b.String()
}

var warningFmt = color.New(color.FgYellow).SprintFunc()

// StderrLogger writes deprecation warnings to standard error.
func StderrLogger(entry DeprecationEntry) {
	fmt.Fprintln(color.Error, warningFmt("DEPRECATION: "+entry.String()))
}

// DiscardLogger drops every entry.
func DiscardLogger(DeprecationEntry) {}
