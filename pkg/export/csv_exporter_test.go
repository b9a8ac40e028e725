package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"District", "Total"},
		Rows: []map[string]string{
			{"District": "Colombo", "Total": "22"},
			{"District": "Kandy", "Total": "7"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "District,Total\nColombo,22\nKandy,7\n", string(out))
}

func TestCSVRenderMissingCellsStayEmpty(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"A", "B", "C"},
		Rows:    []map[string]string{{"A": "1", "C": "3"}},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "A,B,C\n1,,3\n", string(out))
}

func TestCSVRenderQuotesCommas(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Location"},
		Rows:    []map[string]string{{"Location": "Colombo, Dehiwala"}},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Location\n\"Colombo, Dehiwala\"\n", string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
