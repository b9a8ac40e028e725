package models

import "time"

// DailySale is one lottery brand's ticket counts for one submission week.
// WeeklyTotal is derived from the seven day counts and never authoritative
// on its own; the write path recomputes it on every change.
type DailySale struct {
	ID           int64  `db:"id" json:"id"`
	SubmissionID string `db:"submission_id" json:"submissionId"`
	BrandName    string `db:"brand_name" json:"brandName"`
	Monday       int    `db:"monday" json:"monday"`
	Tuesday      int    `db:"tuesday" json:"tuesday"`
	Wednesday    int    `db:"wednesday" json:"wednesday"`
	Thursday     int    `db:"thursday" json:"thursday"`
	Friday       int    `db:"friday" json:"friday"`
	Saturday     int    `db:"saturday" json:"saturday"`
	Sunday       int    `db:"sunday" json:"sunday"`
	WeeklyTotal  int    `db:"weekly_total" json:"weeklyTotal"`
}

// DayCount returns the count for a day named as in Days. Unknown names
// yield 0 rather than an error; callers iterate the fixed list.
func (d *DailySale) DayCount(day string) int {
	switch day {
	case "Monday":
		return d.Monday
	case "Tuesday":
		return d.Tuesday
	case "Wednesday":
		return d.Wednesday
	case "Thursday":
		return d.Thursday
	case "Friday":
		return d.Friday
	case "Saturday":
		return d.Saturday
	case "Sunday":
		return d.Sunday
	}
	return 0
}

// Submission is one dealer/week sales report with its per-brand daily counts.
// TotalTickets always equals the sum of the child weekly totals; both are
// persisted together in the write transaction.
type Submission struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	District      string    `db:"district" json:"district"`
	City          string    `db:"city" json:"city"`
	DealerName    string    `db:"dealer_name" json:"dealerName"`
	DealerNumber  string    `db:"dealer_number" json:"dealerNumber"`
	AssistantName string    `db:"assistant_name" json:"assistantName"`
	SalesMethod   string    `db:"sales_method" json:"salesMethod"`
	SalesLocation string    `db:"sales_location" json:"salesLocation"`
	IsDraft       bool      `db:"is_draft" json:"isDraft"`
	TotalTickets  int       `db:"total_tickets" json:"totalTickets"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`

	// Joined from the owning user.
	SubmittedBy     string `db:"username" json:"submittedBy"`
	SubmittedByName string `db:"full_name" json:"submittedByName"`

	DailySales []DailySale `db:"-" json:"dailySales"`
}

// SubmissionFilter captures the report/list query criteria. An empty UserID
// means no ownership scoping (manager view); district and city match as
// case-insensitive substrings.
type SubmissionFilter struct {
	UserID    string
	IsDraft   *bool
	StartDate *time.Time
	EndDate   *time.Time
	District  string
	City      string
	Limit     int
	Offset    int
}
