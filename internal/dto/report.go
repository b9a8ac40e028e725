package dto

import "github.com/kasunw/lottery-sales-api/internal/models"

// SummaryQuery carries the report filter parameters as received; dates are
// parsed by the service and echoed back verbatim in the response.
type SummaryQuery struct {
	StartDate string
	EndDate   string
	District  string
	City      string
}

// ExportQuery extends the summary filters with the requested file format.
type ExportQuery struct {
	SummaryQuery
	Format string
}

// BrandTotals accumulates one brand's day counts across a submission set.
type BrandTotals struct {
	Monday    int `json:"monday"`
	Tuesday   int `json:"tuesday"`
	Wednesday int `json:"wednesday"`
	Thursday  int `json:"thursday"`
	Friday    int `json:"friday"`
	Saturday  int `json:"saturday"`
	Sunday    int `json:"sunday"`
	Total     int `json:"total"`
}

// LocationTotals groups submission counts by the literal "district, city"
// string. Distinct spellings form distinct groups on purpose.
type LocationTotals struct {
	District     string `json:"district"`
	City         string `json:"city"`
	Submissions  int    `json:"submissions"`
	TotalTickets int    `json:"totalTickets"`
}

// DateRange echoes the requested date filters.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SummaryFilters echoes the requested location filters.
type SummaryFilters struct {
	District string `json:"district"`
	City     string `json:"city"`
}

// SummaryStats heads the summary report payload.
type SummaryStats struct {
	TotalSubmissions int            `json:"totalSubmissions"`
	TotalTickets     int            `json:"totalTickets"`
	DateRange        DateRange      `json:"dateRange"`
	Filters          SummaryFilters `json:"filters"`
}

// SummaryResponse is the GET /reports/summary payload.
type SummaryResponse struct {
	Summary         SummaryStats            `json:"summary"`
	BrandSummary    map[string]*BrandTotals `json:"brandSummary"`
	LocationSummary []LocationTotals        `json:"locationSummary"`
	Submissions     []models.Submission     `json:"submissions"`
}

// DashboardStats partitions submission counts for the dashboard cards.
type DashboardStats struct {
	TotalSubmissions     int `json:"totalSubmissions"`
	ThisWeekSubmissions  int `json:"thisWeekSubmissions"`
	ThisMonthSubmissions int `json:"thisMonthSubmissions"`
	DraftSubmissions     int `json:"draftSubmissions"`
}

// DashboardResponse is the GET /reports/dashboard payload.
type DashboardResponse struct {
	Stats             DashboardStats      `json:"stats"`
	RecentSubmissions []models.Submission `json:"recentSubmissions"`
}
