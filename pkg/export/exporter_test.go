package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Contacts",
		Headers: []string{"Name", "Email", "Status"},
		Rows: [][]string{
			{"Grace Atim", "grace@example.com", "unread"},
			{"John Okello", "john@example.com", "read"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	data, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Email", "Status"}, records[0])
	assert.Equal(t, "grace@example.com", records[1][1])
}

func TestCSVExporterPadsShortRows(t *testing.T) {
	table := sampleTable()
	table.Rows = [][]string{{"Only Name"}}

	data, err := NewCSVExporter().Render(table)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Only Name", "", ""}, records[1])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data, err := NewPDFExporter().Render(sampleTable())
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
