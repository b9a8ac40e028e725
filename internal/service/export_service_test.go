package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasunw/lottery-sales-api/internal/dto"
	"github.com/kasunw/lottery-sales-api/internal/models"
	appErrors "github.com/kasunw/lottery-sales-api/pkg/errors"
)

func exportSubmission() models.Submission {
	return models.Submission{
		SubmittedBy:   "kasun",
		District:      "Colombo",
		City:          "Dehiwala",
		DealerName:    "Sunil Stores",
		DealerNumber:  "123456",
		AssistantName: "Nimal",
		SalesMethod:   "Counter",
		SalesLocation: "Main Street",
		CreatedAt:     time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		DailySales: []models.DailySale{
			{BrandName: "Sasiri", Monday: 10, Tuesday: 5, WeeklyTotal: 15},
		},
	}
}

func TestExportColumnsShape(t *testing.T) {
	headers := exportColumns()
	require.Len(t, headers, 81)

	assert.Equal(t, "Submitted By", headers[0])
	assert.Equal(t, "Sales Location", headers[7])
	assert.Equal(t, "Monday_Supiri Dhana Sampatha", headers[8])
	assert.Equal(t, "Monday_Total", headers[17])
	assert.Equal(t, "Sunday_Total", headers[77])
	assert.Equal(t, "Weekly Total", headers[78])
	assert.Equal(t, "Updated Date", headers[80])
}

func TestExportCSVContent(t *testing.T) {
	lister := &fakeLister{submissions: []models.Submission{exportSubmission()}}
	svc := NewExportService(lister, nil, nil, nil, nil)

	file, err := svc.Export(context.Background(), manager(), dto.ExportQuery{Format: FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "lottery-sales-report.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[1], 81)

	byHeader := make(map[string]string, 81)
	for i, header := range records[0] {
		byHeader[header] = records[1][i]
	}

	assert.Equal(t, "kasun", byHeader["Submitted By"])
	assert.Equal(t, "10", byHeader["Monday_Sasiri"])
	assert.Equal(t, "5", byHeader["Tuesday_Sasiri"])
	assert.Equal(t, "10", byHeader["Monday_Total"])
	assert.Equal(t, "0", byHeader["Monday_Kapruka"])
	assert.Equal(t, "0", byHeader["Wednesday_Total"])
	assert.Equal(t, "15", byHeader["Weekly Total"])
	assert.Equal(t, "2026-03-10", byHeader["Created Date"])
	assert.Equal(t, "2026-03-11", byHeader["Updated Date"])
}

func TestExportCSVDeterministic(t *testing.T) {
	lister := &fakeLister{submissions: []models.Submission{exportSubmission(), exportSubmission()}}
	svc := NewExportService(lister, nil, nil, nil, nil)

	first, err := svc.Export(context.Background(), manager(), dto.ExportQuery{})
	require.NoError(t, err)
	second, err := svc.Export(context.Background(), manager(), dto.ExportQuery{})
	require.NoError(t, err)
	assert.Equal(t, first.Payload, second.Payload)
}

func TestExportEmptyFormatDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&fakeLister{}, nil, nil, nil, nil)

	file, err := svc.Export(context.Background(), manager(), dto.ExportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "lottery-sales-report.csv", file.Filename)
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeLister{}, nil, nil, nil, nil)

	_, err := svc.Export(context.Background(), manager(), dto.ExportQuery{Format: "pdf"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "format must be csv or excel", appErr.Message)
}

func TestExportExcelFile(t *testing.T) {
	lister := &fakeLister{submissions: []models.Submission{exportSubmission()}}
	svc := NewExportService(lister, nil, nil, nil, nil)

	file, err := svc.Export(context.Background(), manager(), dto.ExportQuery{Format: FormatExcel})
	require.NoError(t, err)
	assert.Equal(t, "lottery-sales-report.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.NotEmpty(t, file.Payload)
}

func TestExportQueryObserved(t *testing.T) {
	lister := &fakeLister{submissions: []models.Submission{exportSubmission()}}
	metrics := NewMetricsService()
	svc := NewExportService(lister, nil, nil, metrics, nil)

	_, err := svc.Export(context.Background(), manager(), dto.ExportQuery{Format: FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.dbQueryDuration, "db_query_duration_seconds"))
}

func TestFlattenSumsDuplicateBrandRows(t *testing.T) {
	sub := exportSubmission()
	sub.DailySales = []models.DailySale{
		{BrandName: "Sasiri", Monday: 10},
		{BrandName: "Sasiri", Monday: 4, Tuesday: 1},
	}

	flat := flatten(&sub)
	// Sasiri is the eighth brand, so Monday_Sasiri sits at counts[7] and
	// the Monday total at counts[9].
	assert.Equal(t, 14, flat.counts[7])
	assert.Equal(t, 14, flat.counts[9])
	assert.Equal(t, 1, flat.counts[17])
}

func TestBuildBrandRowsZeroFills(t *testing.T) {
	rows := buildBrandRows([]models.Submission{exportSubmission()})
	require.Len(t, rows, len(models.Brands))

	byBrand := make(map[string]int, len(rows))
	for i, row := range rows {
		byBrand[row.Brand] = i
	}
	sasiri := rows[byBrand["Sasiri"]]
	assert.Equal(t, 10, sasiri.Days[0])
	assert.Equal(t, 15, sasiri.Total)

	shanida := rows[byBrand["Shanida"]]
	assert.Zero(t, shanida.Total)
	for _, n := range shanida.Days {
		assert.Zero(t, n)
	}
}

func TestBuildDistrictRows(t *testing.T) {
	first := exportSubmission()
	second := exportSubmission()
	second.DealerName = "Kamal Traders"
	third := exportSubmission()
	third.District = "Kandy"

	rows := buildDistrictRows([]models.Submission{first, second, third})
	require.Len(t, rows, 2)
	assert.Equal(t, "Colombo", rows[0].District)
	assert.Equal(t, 2, rows[0].Submissions)
	assert.Equal(t, 30, rows[0].TotalTickets)
	assert.Equal(t, 2, rows[0].Dealers)
	assert.Equal(t, "Kandy", rows[1].District)
	assert.Equal(t, 1, rows[1].Dealers)
}
