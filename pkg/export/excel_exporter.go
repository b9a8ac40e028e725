package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DetailLayout describes the Sales Details sheet column structure: scalar
// columns on the left, one ten-column group per day (nine brands plus a day
// total), and trailing total/date columns on the right.
type DetailLayout struct {
	Scalars  []string
	Days     []string
	Brands   []string
	Trailing []string
}

// Columns returns the total column count of the details sheet.
func (l DetailLayout) Columns() int {
	return len(l.Scalars) + len(l.Days)*(len(l.Brands)+1) + len(l.Trailing)
}

// DetailRow holds one submission's flattened values in layout order.
// Counts is day-major: for each day, the per-brand counts followed by the
// day total.
type DetailRow struct {
	Scalars  []string
	Counts   []int
	Trailing []interface{}
}

// BrandSummaryRow is one line of the Brand Summary sheet.
type BrandSummaryRow struct {
	Brand string
	Days  []int
	Total int
}

// DistrictSummaryRow is one line of the District Summary sheet.
type DistrictSummaryRow struct {
	District     string
	Submissions  int
	TotalTickets int
	Dealers      int
}

// SalesWorkbook is the full input of the three-sheet sales report.
type SalesWorkbook struct {
	Layout    DetailLayout
	Rows      []DetailRow
	Brands    []BrandSummaryRow
	Districts []DistrictSummaryRow
}

const (
	detailsSheet  = "Sales Details"
	brandSheet    = "Brand Summary"
	districtSheet = "District Summary"
)

// ExcelExporter renders a SalesWorkbook into xlsx bytes.
type ExcelExporter struct{}

// NewExcelExporter builds an xlsx exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Render builds the three-sheet workbook in memory. Nothing is returned on
// error; callers must never stream a partial file.
func (e *ExcelExporter) Render(wb SalesWorkbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailsSheet); err != nil {
		return nil, fmt.Errorf("rename details sheet: %w", err)
	}
	for _, name := range []string{brandSheet, districtSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	integer, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	if err != nil {
		return nil, fmt.Errorf("number style: %w", err)
	}

	if err := e.renderDetails(f, wb, header, integer); err != nil {
		return nil, err
	}
	if err := e.renderBrandSummary(f, wb, header, integer); err != nil {
		return nil, err
	}
	if err := e.renderDistrictSummary(f, wb, header, integer); err != nil {
		return nil, err
	}

	index, err := f.GetSheetIndex(detailsSheet)
	if err != nil {
		return nil, fmt.Errorf("details sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// renderDetails lays out the two-row merged header and the data matrix.
func (e *ExcelExporter) renderDetails(f *excelize.File, wb SalesWorkbook, headerStyle, intStyle int) error {
	g := newGrid(f, detailsSheet)
	layout := wb.Layout
	brandCols := len(layout.Brands) + 1

	// Scalar labels span both header rows.
	for i, label := range layout.Scalars {
		col := i + 1
		g.set(1, col, label)
		g.merge(1, col, 2, col)
		g.width(col, col, scalarWidth(label))
	}

	// Each day label spans its brand columns plus the day total; brand
	// names and the Total label sit beneath it.
	for d, day := range layout.Days {
		start := len(layout.Scalars) + 1 + d*brandCols
		g.set(1, start, day)
		g.merge(1, start, 1, start+brandCols-1)
		for b, brand := range layout.Brands {
			g.set(2, start+b, brand)
		}
		g.set(2, start+brandCols-1, "Total")
		g.width(start, start+brandCols-2, 6)
		g.width(start+brandCols-1, start+brandCols-1, 8)
	}

	// Trailing columns span both header rows like the scalars.
	trailingStart := len(layout.Scalars) + len(layout.Days)*brandCols + 1
	for i, label := range layout.Trailing {
		col := trailingStart + i
		g.set(1, col, label)
		g.merge(1, col, 2, col)
		g.width(col, col, 12)
	}

	lastCol := layout.Columns()
	g.style(1, 1, 2, lastCol, headerStyle)

	for r, row := range wb.Rows {
		rowNum := r + 3
		for i, v := range row.Scalars {
			g.set(rowNum, i+1, v)
		}
		for i, n := range row.Counts {
			g.set(rowNum, len(layout.Scalars)+1+i, n)
		}
		for i, v := range row.Trailing {
			g.set(rowNum, trailingStart+i, v)
		}
	}
	if len(wb.Rows) > 0 {
		g.style(3, len(layout.Scalars)+1, len(wb.Rows)+2, trailingStart, intStyle)
	}

	// Keep both header rows and the scalar columns visible while scrolling.
	g.freeze(len(layout.Scalars), 2)

	return g.Err()
}

func (e *ExcelExporter) renderBrandSummary(f *excelize.File, wb SalesWorkbook, headerStyle, intStyle int) error {
	g := newGrid(f, brandSheet)
	layout := wb.Layout

	g.set(1, 1, "Brand")
	for i, day := range layout.Days {
		g.set(1, i+2, day)
	}
	g.set(1, len(layout.Days)+2, "Total")
	g.style(1, 1, 1, len(layout.Days)+2, headerStyle)

	for r, row := range wb.Brands {
		rowNum := r + 2
		g.set(rowNum, 1, row.Brand)
		for i, n := range row.Days {
			g.set(rowNum, i+2, n)
		}
		g.set(rowNum, len(layout.Days)+2, row.Total)
	}
	if len(wb.Brands) > 0 {
		g.style(2, 2, len(wb.Brands)+1, len(layout.Days)+2, intStyle)
	}

	g.width(1, 1, 24)
	g.width(2, len(layout.Days)+2, 10)
	g.freeze(0, 1)

	return g.Err()
}

func (e *ExcelExporter) renderDistrictSummary(f *excelize.File, wb SalesWorkbook, headerStyle, intStyle int) error {
	g := newGrid(f, districtSheet)

	headers := []string{"District", "Total Submissions", "Total Tickets", "Distinct Dealers"}
	for i, h := range headers {
		g.set(1, i+1, h)
	}
	g.style(1, 1, 1, len(headers), headerStyle)

	for r, row := range wb.Districts {
		rowNum := r + 2
		g.set(rowNum, 1, row.District)
		g.set(rowNum, 2, row.Submissions)
		g.set(rowNum, 3, row.TotalTickets)
		g.set(rowNum, 4, row.Dealers)
	}
	if len(wb.Districts) > 0 {
		g.style(2, 2, len(wb.Districts)+1, len(headers), intStyle)
	}

	g.width(1, 1, 18)
	g.width(2, 4, 16)
	g.freeze(0, 1)

	return g.Err()
}

// scalarWidth tunes scalar column widths to their header length.
func scalarWidth(header string) float64 {
	w := float64(len(header)) + 6
	if w < 12 {
		w = 12
	}
	return w
}

// sheetGrid wraps excelize with row/column addressed operations so the
// layout code stays free of cell-name arithmetic. The first error sticks;
// later calls become no-ops.
type sheetGrid struct {
	f     *excelize.File
	sheet string
	err   error
}

func newGrid(f *excelize.File, sheet string) *sheetGrid {
	return &sheetGrid{f: f, sheet: sheet}
}

func (g *sheetGrid) Err() error {
	return g.err
}

func (g *sheetGrid) set(row, col int, value interface{}) {
	if g.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		g.err = err
		return
	}
	g.err = g.f.SetCellValue(g.sheet, cell, value)
}

func (g *sheetGrid) merge(startRow, startCol, endRow, endCol int) {
	if g.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		g.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		g.err = err
		return
	}
	g.err = g.f.MergeCell(g.sheet, from, to)
}

func (g *sheetGrid) style(startRow, startCol, endRow, endCol, styleID int) {
	if g.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		g.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		g.err = err
		return
	}
	g.err = g.f.SetCellStyle(g.sheet, from, to, styleID)
}

func (g *sheetGrid) width(startCol, endCol int, width float64) {
	if g.err != nil {
		return
	}
	from, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		g.err = err
		return
	}
	to, err := excelize.ColumnNumberToName(endCol)
	if err != nil {
		g.err = err
		return
	}
	g.err = g.f.SetColWidth(g.sheet, from, to, width)
}

// freeze pins the given number of leading columns and rows.
func (g *sheetGrid) freeze(cols, rows int) {
	if g.err != nil {
		return
	}
	topLeft, err := excelize.CoordinatesToCellName(cols+1, rows+1)
	if err != nil {
		g.err = err
		return
	}
	pane := "bottomRight"
	if cols == 0 {
		pane = "bottomLeft"
	}
	g.err = g.f.SetPanes(g.sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      cols,
		YSplit:      rows,
		TopLeftCell: topLeft,
		ActivePane:  pane,
	})
}
