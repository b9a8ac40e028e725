package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kasunw/lottery-sales-api/internal/dto"
	"github.com/kasunw/lottery-sales-api/internal/models"
	appErrors "github.com/kasunw/lottery-sales-api/pkg/errors"
	"github.com/kasunw/lottery-sales-api/pkg/export"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

// Export content types and filenames.
const (
	csvContentType   = "text/csv"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvFilename      = "lottery-sales-report.csv"
	excelFilename    = "lottery-sales-report.xlsx"
)

// scalarColumns are the per-submission text columns, in export order.
var scalarColumns = []string{
	"Submitted By",
	"District",
	"City",
	"Dealer Name",
	"Dealer Number",
	"Assistant Name",
	"Sales Method",
	"Sales Location",
}

// trailingColumns close out every export row.
var trailingColumns = []string{"Weekly Total", "Created Date", "Updated Date"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type excelRenderer interface {
	Render(wb export.SalesWorkbook) ([]byte, error)
}

// ExportFile is a rendered download ready for the HTTP layer.
type ExportFile struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService flattens submissions into the fixed 81-column matrix and
// renders it as CSV or as the three-sheet spreadsheet.
type ExportService struct {
	repo    reportSubmissionLister
	csv     csvRenderer
	excel   excelRenderer
	metrics *MetricsService
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(repo reportSubmissionLister, csv csvRenderer, excel excelRenderer, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if excel == nil {
		excel = export.NewExcelExporter()
	}
	return &ExportService{repo: repo, csv: csv, excel: excel, metrics: metrics, logger: logger}
}

// Export fetches the filtered submissions and renders the requested format.
// An empty format means CSV.
func (s *ExportService) Export(ctx context.Context, actor *models.JWTClaims, q dto.ExportQuery) (*ExportFile, error) {
	format := q.Format
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatExcel {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or excel")
	}

	start := time.Now()
	submissions, err := s.repo.ListForReport(ctx, reportFilter(actor, q.SummaryQuery))
	if err != nil {
		s.logger.Error("export fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("report_export", time.Since(start))
	}

	if format == FormatCSV {
		payload, err := s.csv.Render(buildDataset(submissions))
		if err != nil {
			s.logger.Error("csv render failed", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return &ExportFile{Payload: payload, ContentType: csvContentType, Filename: csvFilename}, nil
	}

	payload, err := s.excel.Render(buildWorkbook(submissions))
	if err != nil {
		s.logger.Error("spreadsheet render failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{Payload: payload, ContentType: excelContentType, Filename: excelFilename}, nil
}

// exportColumns returns the fixed 81-column header list: 8 scalars, then
// per day the 9 brand columns plus the day total, then the 3 trailing
// columns.
func exportColumns() []string {
	headers := make([]string, 0, len(scalarColumns)+len(models.Days)*(len(models.Brands)+1)+len(trailingColumns))
	headers = append(headers, scalarColumns...)
	for _, day := range models.Days {
		for _, brand := range models.Brands {
			headers = append(headers, day+"_"+brand)
		}
		headers = append(headers, day+"_Total")
	}
	headers = append(headers, trailingColumns...)
	return headers
}

// flatRow is one submission cross-tabulated over day and brand. Every
// brand cell is present even when the submission has no row for the brand;
// the fixed report template never drops columns.
type flatRow struct {
	scalars []string
	counts  []int
	weekly  int
	created string
	updated string
}

func flatten(sub *models.Submission) flatRow {
	// Accumulate per brand so duplicate brand rows, should they ever
	// occur, sum rather than shadow each other.
	byBrand := make(map[string]*models.DailySale, len(sub.DailySales))
	for i := range sub.DailySales {
		sale := sub.DailySales[i]
		if acc, ok := byBrand[sale.BrandName]; ok {
			acc.Monday += sale.Monday
			acc.Tuesday += sale.Tuesday
			acc.Wednesday += sale.Wednesday
			acc.Thursday += sale.Thursday
			acc.Friday += sale.Friday
			acc.Saturday += sale.Saturday
			acc.Sunday += sale.Sunday
		} else {
			copied := sale
			byBrand[sale.BrandName] = &copied
		}
	}

	counts := make([]int, 0, len(models.Days)*(len(models.Brands)+1))
	for _, day := range models.Days {
		dayTotal := 0
		for _, brand := range models.Brands {
			n := 0
			if sale, ok := byBrand[brand]; ok {
				n = sale.DayCount(day)
			}
			counts = append(counts, n)
			dayTotal += n
		}
		counts = append(counts, dayTotal)
	}

	return flatRow{
		scalars: []string{
			sub.SubmittedBy,
			sub.District,
			sub.City,
			sub.DealerName,
			sub.DealerNumber,
			sub.AssistantName,
			sub.SalesMethod,
			sub.SalesLocation,
		},
		counts:  counts,
		weekly:  SubmissionTotal(sub.DailySales),
		created: sub.CreatedAt.UTC().Format("2006-01-02"),
		updated: sub.UpdatedAt.UTC().Format("2006-01-02"),
	}
}

// buildDataset produces the CSV-ready dataset: one record per submission,
// 81 columns in fixed order.
func buildDataset(submissions []models.Submission) export.Dataset {
	headers := exportColumns()
	rows := make([]map[string]string, 0, len(submissions))
	for i := range submissions {
		flat := flatten(&submissions[i])
		row := make(map[string]string, len(headers))
		for j, header := range scalarColumns {
			row[header] = flat.scalars[j]
		}
		offset := len(scalarColumns)
		for j, n := range flat.counts {
			row[headers[offset+j]] = strconv.Itoa(n)
		}
		row["Weekly Total"] = strconv.Itoa(flat.weekly)
		row["Created Date"] = flat.created
		row["Updated Date"] = flat.updated
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// buildWorkbook assembles the spreadsheet input: the details matrix plus
// the brand and district summary tables.
func buildWorkbook(submissions []models.Submission) export.SalesWorkbook {
	wb := export.SalesWorkbook{
		Layout: export.DetailLayout{
			Scalars:  scalarColumns,
			Days:     models.Days,
			Brands:   models.Brands,
			Trailing: trailingColumns,
		},
	}

	for i := range submissions {
		flat := flatten(&submissions[i])
		wb.Rows = append(wb.Rows, export.DetailRow{
			Scalars:  flat.scalars,
			Counts:   flat.counts,
			Trailing: []interface{}{flat.weekly, flat.created, flat.updated},
		})
	}

	wb.Brands = buildBrandRows(submissions)
	wb.Districts = buildDistrictRows(submissions)
	return wb
}

// buildBrandRows aggregates day counts per brand. Unlike the summary
// endpoint's map, the sheet always lists all brands, zero-filled.
func buildBrandRows(submissions []models.Submission) []export.BrandSummaryRow {
	totals := make(map[string][]int, len(models.Brands))
	for _, brand := range models.Brands {
		totals[brand] = make([]int, len(models.Days))
	}
	for i := range submissions {
		for _, sale := range submissions[i].DailySales {
			days, ok := totals[sale.BrandName]
			if !ok {
				continue
			}
			for d, day := range models.Days {
				days[d] += sale.DayCount(day)
			}
		}
	}

	rows := make([]export.BrandSummaryRow, 0, len(models.Brands))
	for _, brand := range models.Brands {
		days := totals[brand]
		total := 0
		for _, n := range days {
			total += n
		}
		rows = append(rows, export.BrandSummaryRow{Brand: brand, Days: days, Total: total})
	}
	return rows
}

// buildDistrictRows aggregates per observed district in first-seen order:
// submission count, ticket total, and distinct dealer names.
func buildDistrictRows(submissions []models.Submission) []export.DistrictSummaryRow {
	index := make(map[string]int)
	dealers := make(map[string]map[string]struct{})
	rows := make([]export.DistrictSummaryRow, 0)

	for i := range submissions {
		sub := &submissions[i]
		pos, ok := index[sub.District]
		if !ok {
			pos = len(rows)
			index[sub.District] = pos
			rows = append(rows, export.DistrictSummaryRow{District: sub.District})
			dealers[sub.District] = make(map[string]struct{})
		}
		rows[pos].Submissions++
		rows[pos].TotalTickets += SubmissionTotal(sub.DailySales)
		dealers[sub.District][sub.DealerName] = struct{}{}
	}

	for i := range rows {
		rows[i].Dealers = len(dealers[rows[i].District])
	}
	return rows
}
