// Package render holds the terminal presentation helpers: the aligned table
// renderer and the colour-coded message printers the menu layer uses.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleStyle   = color.New(color.FgCyan, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgYellow)
	successStyle = color.New(color.FgGreen)
)

// TableOptions control the optional title row and a leading index column
type TableOptions struct {
	Title     string
	ShowTitle bool
	ShowIndex bool
}

// Table prints aligned monospaced output for equal-length cell columns.
// Columns render in the order given by headers.
func Table(w io.Writer, headers []string, columns map[string][]string, opts TableOptions) {
	if opts.ShowTitle && opts.Title != "" {
		titleStyle.Fprintln(w, opts.Title)
	}

	rows := 0
	for _, header := range headers {
		if len(columns[header]) > rows {
			rows = len(columns[header])
		}
	}

	table := tablewriter.NewWriter(w)
	if opts.ShowIndex {
		table.SetHeader(append([]string{"#"}, headers...))
	} else {
		table.SetHeader(headers)
	}
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i := 0; i < rows; i++ {
		row := make([]string, 0, len(headers)+1)
		if opts.ShowIndex {
			row = append(row, fmt.Sprintf("%d", i+1))
		}
		for _, header := range headers {
			cells := columns[header]
			if i < len(cells) {
				row = append(row, cells[i])
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}
	table.Render()
}

// Rows prints header/row data without building a column map first
func Rows(w io.Writer, title string, headers []string, rows [][]string, showIndex bool) {
	columns := make(map[string][]string, len(headers))
	for _, header := range headers {
		columns[header] = make([]string, 0, len(rows))
	}
	for _, row := range rows {
		for i, header := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			columns[header] = append(columns[header], cell)
		}
	}
	Table(w, headers, columns, TableOptions{Title: title, ShowTitle: title != "", ShowIndex: showIndex})
}

// Error prints a user-visible error in the distinguishing style
func Error(w io.Writer, format string, args ...any) {
	errorStyle.Fprintf(w, "✗ "+format+"\n", args...)
}

// Warning prints a non-fatal notice
func Warning(w io.Writer, format string, args ...any) {
	warningStyle.Fprintf(w, "! "+format+"\n", args...)
}

// Success confirms a completed mutation
func Success(w io.Writer, format string, args ...any) {
	successStyle.Fprintf(w, "✓ "+format+"\n", args...)
}

// Title prints a section heading
func Title(w io.Writer, text string) {
	titleStyle.Fprintln(w, text)
}

// Banner prints the welcome screen
func Banner(w io.Writer) {
	titleStyle.Fprintln(w, "=====================================")
	titleStyle.Fprintln(w, "  mindclinic: wellbeing at hand")
	titleStyle.Fprintln(w, "=====================================")
}
