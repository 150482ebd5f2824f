package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "table, yaml, json")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteStructured(t *testing.T) {
	v := struct {
		Root  string   `json:"root" yaml:"root"`
		Files []string `json:"files" yaml:"files"`
	}{"widget", []string{"build.sh"}}

	var buf bytes.Buffer
	require.NoError(t, WriteStructured(&buf, FormatYAML, v))
	assert.Equal(t, "root: widget\nfiles:\n  - build.sh\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteStructured(&buf, FormatJSON, v))
	assert.JSONEq(t, `{"root":"widget","files":["build.sh"]}`, buf.String())

	assert.Error(t, WriteStructured(&buf, FormatTable, v))
}

func TestTable(t *testing.T) {
	out := NewTable("PATH", "ROLE").
		Row("build.sh", "build-script").
		Row("src/widget.cc", "binding-source").
		String()

	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "build.sh")
	assert.Contains(t, out, "binding-source")
}
