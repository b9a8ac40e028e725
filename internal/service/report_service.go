package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kasunw/lottery-sales-api/internal/dto"
	"github.com/kasunw/lottery-sales-api/internal/models"
	appErrors "github.com/kasunw/lottery-sales-api/pkg/errors"
)

type reportSubmissionLister interface {
	ListForReport(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
}

// ReportServiceConfig bounds the payload sizes of the reporting endpoints.
type ReportServiceConfig struct {
	SummaryLimit int
	RecentLimit  int
}

// ReportService aggregates filtered submissions into the summary and
// dashboard views. Role scoping happens in the filter it hands to the
// repository; the aggregation itself trusts its input set.
type ReportService struct {
	repo    reportSubmissionLister
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     ReportServiceConfig
}

// NewReportService constructs the report service.
func NewReportService(repo reportSubmissionLister, metrics *MetricsService, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SummaryLimit <= 0 {
		cfg.SummaryLimit = 50
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	return &ReportService{repo: repo, metrics: metrics, logger: logger, now: time.Now, cfg: cfg}
}

// Summary builds the filtered sales summary: headline totals, per-brand and
// per-location aggregates, and the most recent submissions.
func (s *ReportService) Summary(ctx context.Context, actor *models.JWTClaims, q dto.SummaryQuery) (*dto.SummaryResponse, error) {
	filter := reportFilter(actor, q)
	start := time.Now()
	submissions, err := s.repo.ListForReport(ctx, filter)
	if err != nil {
		s.logger.Error("summary fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("report_summary", time.Since(start))
	}

	totalTickets := 0
	for i := range submissions {
		totalTickets += SubmissionTotal(submissions[i].DailySales)
	}

	recent := submissions
	if len(recent) > s.cfg.SummaryLimit {
		recent = recent[:s.cfg.SummaryLimit]
	}

	return &dto.SummaryResponse{
		Summary: dto.SummaryStats{
			TotalSubmissions: len(submissions),
			TotalTickets:     totalTickets,
			DateRange:        dto.DateRange{StartDate: q.StartDate, EndDate: q.EndDate},
			Filters:          dto.SummaryFilters{District: q.District, City: q.City},
		},
		BrandSummary:    brandSummary(submissions),
		LocationSummary: locationSummary(submissions),
		Submissions:     recent,
	}, nil
}

// Dashboard builds the landing-page statistics and recent submissions.
func (s *ReportService) Dashboard(ctx context.Context, actor *models.JWTClaims) (*dto.DashboardResponse, error) {
	filter := models.SubmissionFilter{}
	if !actor.IsManager() {
		filter.UserID = actor.UserID
	}

	start := time.Now()
	submissions, err := s.repo.ListForReport(ctx, filter)
	if err != nil {
		s.logger.Error("dashboard fetch failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("report_dashboard", time.Since(start))
	}

	recent := make([]models.Submission, 0, s.cfg.RecentLimit)
	for i := range submissions {
		if submissions[i].IsDraft {
			continue
		}
		recent = append(recent, submissions[i])
		if len(recent) == s.cfg.RecentLimit {
			break
		}
	}

	return &dto.DashboardResponse{
		Stats:             dashboardStats(submissions, s.now()),
		RecentSubmissions: recent,
	}, nil
}

// reportFilter translates the query into a repository filter, scoping
// assistants to their own rows. Reports only ever cover final submissions.
func reportFilter(actor *models.JWTClaims, q dto.SummaryQuery) models.SubmissionFilter {
	notDraft := false
	filter := models.SubmissionFilter{
		IsDraft:  &notDraft,
		District: q.District,
		City:     q.City,
	}
	if !actor.IsManager() {
		filter.UserID = actor.UserID
	}
	if start, ok := parseDate(q.StartDate); ok {
		filter.StartDate = &start
	}
	if end, ok := parseDate(q.EndDate); ok {
		filter.EndDate = &end
	}
	return filter
}

// parseDate accepts calendar dates and RFC 3339 timestamps. Anything else
// is ignored rather than rejected; report filters are advisory.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// dashboardStats partitions the submission set by recency and draft flag.
// Weeks start on the most recent Sunday 00:00 UTC; months on the first.
func dashboardStats(submissions []models.Submission, now time.Time) dto.DashboardStats {
	now = now.UTC()
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := dto.DashboardStats{}
	for i := range submissions {
		sub := &submissions[i]
		if sub.IsDraft {
			stats.DraftSubmissions++
			continue
		}
		stats.TotalSubmissions++
		created := sub.CreatedAt.UTC()
		if !created.Before(weekStart) {
			stats.ThisWeekSubmissions++
		}
		if !created.Before(monthStart) {
			stats.ThisMonthSubmissions++
		}
	}
	return stats
}

func startOfWeek(now time.Time) time.Time {
	sunday := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, time.UTC)
}

// brandSummary accumulates day counts and weekly totals per brand. Brands
// with no activity in the set are absent from the map; the export path
// zero-fills instead. Both behaviors are intentional. Totals come from the
// stored weekly_total column, the same source the headline total sums, so
// the two always reconcile even when a stored row has drifted from its day
// counts.
func brandSummary(submissions []models.Submission) map[string]*dto.BrandTotals {
	summary := make(map[string]*dto.BrandTotals)
	for i := range submissions {
		for _, sale := range submissions[i].DailySales {
			bucket, ok := summary[sale.BrandName]
			if !ok {
				bucket = &dto.BrandTotals{}
				summary[sale.BrandName] = bucket
			}
			bucket.Monday += sale.Monday
			bucket.Tuesday += sale.Tuesday
			bucket.Wednesday += sale.Wednesday
			bucket.Thursday += sale.Thursday
			bucket.Friday += sale.Friday
			bucket.Saturday += sale.Saturday
			bucket.Sunday += sale.Sunday
			if sale.WeeklyTotal > 0 {
				bucket.Total += sale.WeeklyTotal
			}
		}
	}
	return summary
}

// locationSummary groups by the literal "district, city" string with no
// normalization; differently spelled duplicates stay separate groups.
// Group order is first-seen.
func locationSummary(submissions []models.Submission) []dto.LocationTotals {
	index := make(map[string]int)
	groups := make([]dto.LocationTotals, 0)
	for i := range submissions {
		sub := &submissions[i]
		key := sub.District + ", " + sub.City
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, dto.LocationTotals{District: sub.District, City: sub.City})
		}
		groups[pos].Submissions++
		groups[pos].TotalTickets += SubmissionTotal(sub.DailySales)
	}
	return groups
}
