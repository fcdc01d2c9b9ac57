// Package output renders sentinelctl results as colored messages, tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var (
	// Out and Err are the destinations for every helper in this package.
	Out io.Writer = color.Output
	Err io.Writer = color.Error

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.FgWhite, color.Bold)
)

func Success(format string, a ...any) {
	successColor.Fprintf(Out, "✓ "+format+"\n", a...)
}

func Error(format string, a ...any) {
	errorColor.Fprintf(Err, "✗ "+format+"\n", a...)
}

func Info(format string, a ...any) {
	infoColor.Fprintf(Out, format+"\n", a...)
}

func Warn(format string, a ...any) {
	warnColor.Fprintf(Out, "⚠ "+format+"\n", a...)
}

func JSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func YAML(v any) error {
	enc := yaml.NewEncoder(Out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v as JSON or YAML and reports whether format was one of
// them. Table output is left to the caller.
func Structured(format string, v any) (bool, error) {
	switch format {
	case FormatJSON:
		return true, JSON(v)
	case FormatYAML:
		return true, YAML(v)
	default:
		return false, nil
	}
}

// ValidFormat reports whether format is a known --output value.
func ValidFormat(format string) bool {
	return format == FormatTable || format == FormatJSON || format == FormatYAML
}

var severityColors = map[string]*color.Color{
	"critical": color.New(color.FgRed, color.Bold),
	"high":     color.New(color.FgRed),
	"medium":   color.New(color.FgYellow),
	"low":      color.New(color.FgBlue),
	"error":    color.New(color.FgRed),
	"warn":     color.New(color.FgYellow),
	"debug":    color.New(color.Faint),
}

// Severity colors an alert severity or log level for table cells.
func Severity(s string) string {
	if c, ok := severityColors[s]; ok {
		return c.Sprint(s)
	}
	return s
}

type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

// Render writes the table to Out. Column widths ignore color escape codes.
func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := visibleLen(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i, header := range t.headers {
		headerColor.Fprint(Out, pad(header, widths[i]))
	}
	fmt.Fprintln(Out)

	for i := range t.headers {
		fmt.Fprint(Out, strings.Repeat("-", widths[i])+"  ")
	}
	fmt.Fprintln(Out)

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprint(Out, pad(cell, widths[i]))
			}
		}
		fmt.Fprintln(Out)
	}
}

func pad(cell string, width int) string {
	return cell + strings.Repeat(" ", width-visibleLen(cell)+2)
}

// visibleLen is the printed width of s with ANSI escapes removed.
func visibleLen(s string) int {
	n, inEscape := 0, false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			n++
		}
	}
	return n
}
