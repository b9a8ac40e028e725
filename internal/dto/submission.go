package dto

import (
	"bytes"
	"strconv"
)

// TicketCount is a day count as supplied by the form client. The UI is
// expected to send validated integers, but the decoder tolerates numeric
// strings, floats, null, and outright garbage: anything unparsable or
// negative becomes 0. Decoding never fails.
type TicketCount int

// UnmarshalJSON implements lenient coercion for ticket counts.
func (t *TicketCount) UnmarshalJSON(data []byte) error {
	*t = 0

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' && raw[len(raw)-1] == '"' && len(raw) >= 2 {
		raw = bytes.TrimSpace(raw[1 : len(raw)-1])
	}

	if n, err := strconv.Atoi(string(raw)); err == nil {
		if n > 0 {
			*t = TicketCount(n)
		}
		return nil
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		if f > 0 {
			*t = TicketCount(int(f))
		}
		return nil
	}

	return nil
}

// Int returns the clamped integer value.
func (t TicketCount) Int() int {
	if t < 0 {
		return 0
	}
	return int(t)
}

// DailySaleInput is one brand row of the weekly sales form.
type DailySaleInput struct {
	BrandName string      `json:"brandName"`
	Monday    TicketCount `json:"monday"`
	Tuesday   TicketCount `json:"tuesday"`
	Wednesday TicketCount `json:"wednesday"`
	Thursday  TicketCount `json:"thursday"`
	Friday    TicketCount `json:"friday"`
	Saturday  TicketCount `json:"saturday"`
	Sunday    TicketCount `json:"sunday"`
}

// SubmissionRequest creates a submission, or updates one when ID is set.
// Drafts skip field validation entirely; IsDraft defaults to true as the
// form auto-saves drafts before the user ever completes the fields.
type SubmissionRequest struct {
	ID            string           `json:"id"`
	District      string           `json:"district"`
	City          string           `json:"city"`
	DealerName    string           `json:"dealerName"`
	DealerNumber  string           `json:"dealerNumber"`
	AssistantName string           `json:"assistantName"`
	SalesMethod   string           `json:"salesMethod"`
	SalesLocation string           `json:"salesLocation"`
	IsDraft       *bool            `json:"isDraft"`
	DailySales    []DailySaleInput `json:"dailySales"`
}

// Draft reports the effective draft flag.
func (r *SubmissionRequest) Draft() bool {
	if r.IsDraft == nil {
		return true
	}
	return *r.IsDraft
}
