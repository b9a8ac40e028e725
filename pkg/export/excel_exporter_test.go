package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLayout() DetailLayout {
	return DetailLayout{
		Scalars:  []string{"Submitted By", "District"},
		Days:     []string{"Monday", "Tuesday"},
		Brands:   []string{"Sasiri", "Kapruka"},
		Trailing: []string{"Weekly Total", "Created Date"},
	}
}

func TestDetailLayoutColumns(t *testing.T) {
	// 2 scalars + 2 days * (2 brands + 1 total) + 2 trailing
	assert.Equal(t, 10, testLayout().Columns())
}

func TestExcelRenderSheets(t *testing.T) {
	exporter := NewExcelExporter()
	wb := SalesWorkbook{
		Layout: testLayout(),
		Rows: []DetailRow{
			{
				Scalars:  []string{"kasun", "Colombo"},
				Counts:   []int{10, 0, 10, 5, 0, 5},
				Trailing: []interface{}{15, "2026-03-10"},
			},
		},
		Brands: []BrandSummaryRow{
			{Brand: "Sasiri", Days: []int{10, 5}, Total: 15},
			{Brand: "Kapruka", Days: []int{0, 0}, Total: 0},
		},
		Districts: []DistrictSummaryRow{
			{District: "Colombo", Submissions: 1, TotalTickets: 15, Dealers: 1},
		},
	}

	payload, err := exporter.Render(wb)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Sales Details", "Brand Summary", "District Summary"}, f.GetSheetList())

	// Two-row header: scalars merge down, day labels merge across.
	v, err := f.GetCellValue("Sales Details", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Submitted By", v)

	v, err = f.GetCellValue("Sales Details", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Monday", v)

	v, err = f.GetCellValue("Sales Details", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Sasiri", v)

	v, err = f.GetCellValue("Sales Details", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)

	merges, err := f.GetMergeCells("Sales Details")
	require.NoError(t, err)
	ranges := make([]string, 0, len(merges))
	for _, m := range merges {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, ranges, "A1:A2")
	assert.Contains(t, ranges, "C1:E1")

	// First data row.
	v, err = f.GetCellValue("Sales Details", "C3")
	require.NoError(t, err)
	assert.Equal(t, "10", v)

	v, err = f.GetCellValue("Sales Details", "I3")
	require.NoError(t, err)
	assert.Equal(t, "15", v)

	// Brand Summary zero-fills inactive brands.
	v, err = f.GetCellValue("Brand Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Kapruka", v)
	v, err = f.GetCellValue("Brand Summary", "D3")
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	v, err = f.GetCellValue("District Summary", "D2")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestExcelRenderEmptyWorkbook(t *testing.T) {
	exporter := NewExcelExporter()

	payload, err := exporter.Render(SalesWorkbook{Layout: testLayout()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sales Details", "A3")
	require.NoError(t, err)
	assert.Empty(t, v)
}
