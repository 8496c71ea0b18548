package output

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in     string
		want   Format
		wantOK bool
	}{
		{"", FormatText, true},
		{"text", FormatText, true},
		{"md", FormatMarkdown, true},
		{"Markdown", FormatMarkdown, true},
		{"csv", FormatCSV, true},
		{"json", FormatJSON, true},
		{"xml", FormatText, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFormat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	headers := []string{"driver", "wins", "team"}
	rows := [][]any{
		{"hamilton", 11, sql.NullString{String: "mercedes", Valid: true}},
		{"bottas", 2, nil},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatText, headers, rows, Options{}))
		assert.True(t, strings.HasPrefix(buf.String(), "| driver   | wins | team     |\n"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatJSON, headers, rows, Options{}))
		assert.JSONEq(t, `[
			{"driver": "hamilton", "wins": 11, "team": "mercedes"},
			{"driver": "bottas", "wins": 2, "team": null}
		]`, buf.String())
		assert.Less(t, strings.Index(buf.String(), `"driver"`), strings.Index(buf.String(), `"wins"`))
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatCSV, headers, rows, Options{ShowNones: true}))
		out := buf.String()
		assert.Contains(t, out, "hamilton,11,mercedes")
		assert.Contains(t, out, "bottas,2,None")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, FormatMarkdown, headers, rows, Options{}))
		out := buf.String()
		assert.Contains(t, out, "hamilton")
		assert.Contains(t, out, "| --- |")
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		require.Error(t, Encode(&buf, Format("xml"), headers, rows, Options{}))
		assert.Empty(t, buf.String())
	})
}

func TestEncode_ShapeMismatch(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(&buf, f, []string{"a", "b"}, [][]any{{1}}, Options{})
			require.ErrorIs(t, err, ErrShapeMismatch)
			assert.Empty(t, buf.String())
		})
	}
}
