package output

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Format is a table encoding.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ParseFormat converts a config value to a Format. "md" is accepted for markdown.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "table":
		return FormatText, true
	case "markdown", "md":
		return FormatMarkdown, true
	case "csv":
		return FormatCSV, true
	case "json":
		return FormatJSON, true
	default:
		return FormatText, false
	}
}

// Encode writes headers and rows in the given format. The text format is the
// aligned table of Render; the other formats ignore the layout options except
// ShowNones.
func Encode(w io.Writer, format Format, headers []string, rows [][]any, opts Options) error {
	switch format {
	case FormatText, "":
		return Render(w, headers, rows, opts)
	case FormatMarkdown, FormatCSV:
		return renderPretty(w, format, headers, rows, opts)
	case FormatJSON:
		return renderJSON(w, headers, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderPretty(w io.Writer, format Format, headers []string, rows [][]any, opts Options) error {
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	t := table.NewWriter()
	t.AppendHeader(header)
	for i, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrShapeMismatch, i, len(row), len(headers))
		}
		r := make(table.Row, len(row))
		for j, v := range row {
			s, ok := FormatValue(v)
			if !ok && opts.ShowNones {
				s = noneText
			}
			r[j] = s
		}
		t.AppendRow(r)
	}

	var out string
	if format == FormatCSV {
		out = t.RenderCSV()
	} else {
		out = t.RenderMarkdown()
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// jsonRow keeps the column order of the table when encoded.
type jsonRow struct {
	keys   []string
	values []any
}

func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func renderJSON(w io.Writer, headers []string, rows [][]any) error {
	out := make([]jsonRow, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrShapeMismatch, i, len(row), len(headers))
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = plainValue(v)
		}
		out = append(out, jsonRow{keys: headers, values: values})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// plainValue unwraps pointers, sql.Null* values and byte slices. Nulls become nil.
func plainValue(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return plainValue(rv.Elem().Interface())
	}
	switch x := v.(type) {
	case []byte:
		return string(x)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return nil
		}
		return plainValue(dv)
	default:
		return v
	}
}
