// Package output renders query results for the terminal: the native aligned
// text table plus markdown, csv and json encodings.
package output

import (
	"bufio"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// ErrShapeMismatch is returned when a row does not have one cell per header.
// Nothing is written in that case.
var ErrShapeMismatch = errors.New("row length does not match header count")

// Align is the horizontal alignment applied to every column.
type Align string

// Alignment modes.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign converts a config value to an Align.
func ParseAlign(s string) (Align, bool) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, true
	case "":
		return AlignLeft, true
	default:
		return AlignLeft, false
	}
}

// Options configures table rendering.
type Options struct {
	Align          Align
	DoubleHeaders  bool
	HideDelimiters bool
	ShowNones      bool
}

const (
	noneText  = "None"
	blankText = " "
)

// Render writes headers and rows as an aligned table:
//
//	| id  | name  |
//	|-----|-------|
//	| 1   | Alice |
//
// Null cells print as "None" with ShowNones and as a single space otherwise.
// With DoubleHeaders the rule and header are repeated below the body.
func Render(w io.Writer, headers []string, rows [][]any, opts Options) error {
	for i, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrShapeMismatch, i, len(row), len(headers))
		}
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = displayCell(v, opts.ShowNones)
		}
	}

	widths := ColumnWidths(headers, cells)

	sep, rule := "|", "-"
	if opts.HideDelimiters {
		sep, rule = " ", " "
	}

	bw := bufio.NewWriter(w)
	writeLine := func(values []string) {
		for j, v := range values {
			bw.WriteString(sep)
			bw.WriteByte(' ')
			bw.WriteString(pad(v, widths[j], opts.Align))
			bw.WriteByte(' ')
		}
		bw.WriteString(sep)
		bw.WriteByte('\n')
	}
	writeRule := func() {
		for _, width := range widths {
			bw.WriteString(sep)
			bw.WriteString(strings.Repeat(rule, width+2))
		}
		bw.WriteString(sep)
		bw.WriteByte('\n')
	}

	writeLine(headers)
	writeRule()
	for _, row := range cells {
		writeLine(row)
	}
	if opts.DoubleHeaders {
		writeRule()
		writeLine(headers)
	}

	return bw.Flush()
}

// ColumnWidths returns the display width of every column: the widest of the
// header and the already formatted cells.
func ColumnWidths(headers []string, cells [][]string) []int {
	widths := make([]int, len(headers))
	for j, h := range headers {
		widths[j] = text.RuneWidthWithoutEscSequences(h)
	}
	for _, row := range cells {
		for j, c := range row {
			if j < len(widths) {
				widths[j] = max(widths[j], text.RuneWidthWithoutEscSequences(c))
			}
		}
	}
	return widths
}

func pad(s string, width int, align Align) string {
	gap := width - text.RuneWidthWithoutEscSequences(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func displayCell(v any, showNones bool) string {
	s, ok := FormatValue(v)
	if ok {
		return s
	}
	if showNones {
		return noneText
	}
	return blankText
}

// FormatValue converts a cell to its display text. The second result is false
// for null values: nil, nil pointers and invalid sql.Null* values.
func FormatValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return FormatValue(rv.Elem().Interface())
	}

	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil || dv == nil {
			return "", false
		}
		return FormatValue(dv)
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(v), true
	}
}
