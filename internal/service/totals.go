package service

import "github.com/kasunw/lottery-sales-api/internal/models"

// WeeklyTotal sums the seven day counts of one brand row. Negative counts
// are clamped to zero so a bad row can never drag totals below the sum of
// its valid days.
func WeeklyTotal(d models.DailySale) int {
	total := 0
	for _, day := range models.Days {
		if n := d.DayCount(day); n > 0 {
			total += n
		}
	}
	return total
}

// SubmissionTotal sums the stored weekly totals across a submission's brand
// rows. The write path keeps those totals recomputed, so this is the
// authoritative ticket count for the submission.
func SubmissionTotal(sales []models.DailySale) int {
	total := 0
	for i := range sales {
		if sales[i].WeeklyTotal > 0 {
			total += sales[i].WeeklyTotal
		}
	}
	return total
}
