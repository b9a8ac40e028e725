package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kasunw/lottery-sales-api/internal/models"
)

const submissionColumns = `s.id, s.user_id, s.district, s.city, s.dealer_name, s.dealer_number,
s.assistant_name, s.sales_method, s.sales_location, s.is_draft, s.total_tickets,
s.created_at, s.updated_at, u.username, u.full_name`

const dailySaleColumns = `id, submission_id, brand_name, monday, tuesday, wednesday, thursday,
friday, saturday, sunday, weekly_total`

// SubmissionRepository persists sales submissions and their daily sales.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// buildWhere translates the filter into SQL predicates. District and city
// match as case-insensitive substrings.
func buildWhere(filter models.SubmissionFilter) (string, []interface{}) {
	clauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != "" {
		clauses = append(clauses, "s.user_id = "+arg(filter.UserID))
	}
	if filter.IsDraft != nil {
		clauses = append(clauses, "s.is_draft = "+arg(*filter.IsDraft))
	}
	if filter.StartDate != nil {
		clauses = append(clauses, "s.created_at >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "s.created_at <= "+arg(*filter.EndDate))
	}
	if filter.District != "" {
		clauses = append(clauses, "s.district ILIKE '%' || "+arg(filter.District)+" || '%'")
	}
	if filter.City != "" {
		clauses = append(clauses, "s.city ILIKE '%' || "+arg(filter.City)+" || '%'")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListForReport returns the filtered submissions, newest first, with daily
// sales and owner attached. No pagination; reports aggregate the full set.
func (r *SubmissionRepository) ListForReport(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM sales_submissions s JOIN users u ON u.id = s.user_id%s ORDER BY s.created_at DESC`,
		submissionColumns, where)

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions for report: %w", err)
	}
	if err := r.attachDailySales(ctx, submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// List returns one page of submissions plus the unpaged total.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error) {
	where, args := buildWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM sales_submissions s JOIN users u ON u.id = s.user_id%s ORDER BY s.created_at DESC`,
		submissionColumns, where)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM sales_submissions s" + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	if err := r.attachDailySales(ctx, submissions); err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// GetByID returns one submission with its daily sales and owner.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_submissions s JOIN users u ON u.id = s.user_id WHERE s.id = $1`,
		submissionColumns)

	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}

	singleton := []models.Submission{submission}
	if err := r.attachDailySales(ctx, singleton); err != nil {
		return nil, err
	}
	return &singleton[0], nil
}

// attachDailySales loads and assigns the daily sales for the given set.
func (r *SubmissionRepository) attachDailySales(ctx context.Context, submissions []models.Submission) error {
	if len(submissions) == 0 {
		return nil
	}

	ids := make([]string, 0, len(submissions))
	for i := range submissions {
		ids = append(ids, submissions[i].ID)
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM daily_sales WHERE submission_id IN (?) ORDER BY id", dailySaleColumns), ids)
	if err != nil {
		return fmt.Errorf("build daily sales query: %w", err)
	}
	query = r.db.Rebind(query)

	var sales []models.DailySale
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return fmt.Errorf("load daily sales: %w", err)
	}

	grouped := make(map[string][]models.DailySale, len(submissions))
	for _, sale := range sales {
		grouped[sale.SubmissionID] = append(grouped[sale.SubmissionID], sale)
	}
	for i := range submissions {
		submissions[i].DailySales = grouped[submissions[i].ID]
	}
	return nil
}

const insertDailySaleQuery = `INSERT INTO daily_sales (submission_id, brand_name, monday, tuesday, wednesday,
thursday, friday, saturday, sunday, weekly_total)
VALUES (:submission_id, :brand_name, :monday, :tuesday, :wednesday, :thursday, :friday, :saturday, :sunday, :weekly_total)`

// CreateWithDailySales inserts the submission and its daily sales in one
// transaction; the precomputed totals land with the rows they derive from.
func (r *SubmissionRepository) CreateWithDailySales(ctx context.Context, submission *models.Submission, sales []models.DailySale) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}
	submission.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create submission: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertSubmission = `INSERT INTO sales_submissions (id, user_id, district, city, dealer_name, dealer_number,
assistant_name, sales_method, sales_location, is_draft, total_tickets, created_at, updated_at)
VALUES (:id, :user_id, :district, :city, :dealer_name, :dealer_number, :assistant_name, :sales_method,
:sales_location, :is_draft, :total_tickets, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertSubmission, submission); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	for i := range sales {
		sales[i].SubmissionID = submission.ID
		if _, err := tx.NamedExecContext(ctx, insertDailySaleQuery, sales[i]); err != nil {
			return fmt.Errorf("insert daily sale: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create submission: %w", err)
	}
	return nil
}

// UpdateWithDailySales replaces the submission fields and its entire daily
// sales set atomically. Daily sales are never patched row by row.
func (r *SubmissionRepository) UpdateWithDailySales(ctx context.Context, submission *models.Submission, sales []models.DailySale) error {
	submission.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update submission: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const updateSubmission = `UPDATE sales_submissions SET district = :district, city = :city,
dealer_name = :dealer_name, dealer_number = :dealer_number, assistant_name = :assistant_name,
sales_method = :sales_method, sales_location = :sales_location, is_draft = :is_draft,
total_tickets = :total_tickets, updated_at = :updated_at WHERE id = :id`
	res, err := tx.NamedExecContext(ctx, updateSubmission, submission)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_sales WHERE submission_id = $1", submission.ID); err != nil {
		return fmt.Errorf("clear daily sales: %w", err)
	}
	for i := range sales {
		sales[i].SubmissionID = submission.ID
		if _, err := tx.NamedExecContext(ctx, insertDailySaleQuery, sales[i]); err != nil {
			return fmt.Errorf("insert daily sale: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update submission: %w", err)
	}
	return nil
}

// Delete removes a submission and its daily sales.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete submission: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_sales WHERE submission_id = $1", id); err != nil {
		return fmt.Errorf("delete daily sales: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM sales_submissions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete submission: %w", err)
	}
	return nil
}
