package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(sampleTable(t)))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// border, header, border, three rows, border
	require.Len(t, lines, 7)

	assert.Contains(t, lines[1], "name")
	assert.Contains(t, lines[1], "active")
	assert.Contains(t, out, "=SUM(A1)", "text tables are not sanitized")
	assert.NotContains(t, out, "'=SUM(A1)")
	assert.Contains(t, lines[5], "null")
}
