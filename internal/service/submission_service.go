package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/kasunw/lottery-sales-api/internal/dto"
	"github.com/kasunw/lottery-sales-api/internal/models"
	appErrors "github.com/kasunw/lottery-sales-api/pkg/errors"
)

type submissionRepository interface {
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	CreateWithDailySales(ctx context.Context, submission *models.Submission, sales []models.DailySale) error
	UpdateWithDailySales(ctx context.Context, submission *models.Submission, sales []models.DailySale) error
	Delete(ctx context.Context, id string) error
}

var dealerNumberPattern = regexp.MustCompile(`^\d+$`)

// SubmissionService owns the submission write path: field validation for
// final submissions, wholesale daily-sales replacement, and the totals
// recomputed on every write.
type SubmissionService struct {
	repo   submissionRepository
	logger *zap.Logger
}

// NewSubmissionService constructs the service.
func NewSubmissionService(repo submissionRepository, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, logger: logger}
}

// List returns one page of submissions, scoped to the actor's own rows
// unless it holds the manager role.
func (s *SubmissionService) List(ctx context.Context, actor *models.JWTClaims, page, limit int, isDraft *bool) ([]models.Submission, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := models.SubmissionFilter{
		IsDraft: isDraft,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}
	if !actor.IsManager() {
		filter.UserID = actor.UserID
	}

	submissions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list submissions failed", zap.Error(err))
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}

	return submissions, &models.Pagination{Page: page, PageSize: limit, TotalCount: total}, nil
}

// Get returns a single submission, enforcing ownership for assistants.
func (s *SubmissionService) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.Submission, error) {
	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}
	if !actor.IsManager() && submission.UserID != actor.UserID {
		return nil, appErrors.ErrForbidden
	}
	return submission, nil
}

// Save creates a submission, or updates one when the request carries an id.
// The daily-sales set is replaced wholesale and both totals are recomputed
// and persisted in the same transaction.
func (s *SubmissionService) Save(ctx context.Context, actor *models.JWTClaims, req dto.SubmissionRequest) (*models.Submission, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	sales := buildDailySales(req.DailySales)
	total := SubmissionTotal(sales)

	if req.ID != "" {
		return s.update(ctx, actor, req, sales, total)
	}

	submission := &models.Submission{
		UserID:        actor.UserID,
		District:      req.District,
		City:          req.City,
		DealerName:    req.DealerName,
		DealerNumber:  req.DealerNumber,
		AssistantName: req.AssistantName,
		SalesMethod:   req.SalesMethod,
		SalesLocation: req.SalesLocation,
		IsDraft:       req.Draft(),
		TotalTickets:  total,
	}
	if err := s.repo.CreateWithDailySales(ctx, submission, sales); err != nil {
		s.logger.Error("create submission failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create submission")
	}

	return s.reload(ctx, submission.ID)
}

func (s *SubmissionService) update(ctx context.Context, actor *models.JWTClaims, req dto.SubmissionRequest, sales []models.DailySale, total int) (*models.Submission, error) {
	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}
	if !actor.IsManager() {
		if existing.UserID != actor.UserID {
			return nil, appErrors.ErrForbidden
		}
		if !existing.IsDraft {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "finalized submissions can only be changed by a territory manager")
		}
	}

	submission := &models.Submission{
		ID:            existing.ID,
		UserID:        existing.UserID,
		District:      req.District,
		City:          req.City,
		DealerName:    req.DealerName,
		DealerNumber:  req.DealerNumber,
		AssistantName: req.AssistantName,
		SalesMethod:   req.SalesMethod,
		SalesLocation: req.SalesLocation,
		IsDraft:       req.Draft(),
		TotalTickets:  total,
		CreatedAt:     existing.CreatedAt,
	}
	if err := s.repo.UpdateWithDailySales(ctx, submission, sales); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		s.logger.Error("update submission failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update submission")
	}

	return s.reload(ctx, submission.ID)
}

// Delete removes a submission; assistants may only delete their own.
func (s *SubmissionService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submission")
	}
	if !actor.IsManager() && existing.UserID != actor.UserID {
		return appErrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		s.logger.Error("delete submission failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete submission")
	}
	return nil
}

func (s *SubmissionService) reload(ctx context.Context, id string) (*models.Submission, error) {
	submission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload submission")
	}
	return submission, nil
}

// buildDailySales converts the form rows into persisted rows with their
// weekly totals computed. Counts were already coerced to non-negative
// integers when the request decoded.
func buildDailySales(inputs []dto.DailySaleInput) []models.DailySale {
	sales := make([]models.DailySale, 0, len(inputs))
	for _, in := range inputs {
		sale := models.DailySale{
			BrandName: in.BrandName,
			Monday:    in.Monday.Int(),
			Tuesday:   in.Tuesday.Int(),
			Wednesday: in.Wednesday.Int(),
			Thursday:  in.Thursday.Int(),
			Friday:    in.Friday.Int(),
			Saturday:  in.Saturday.Int(),
			Sunday:    in.Sunday.Int(),
		}
		sale.WeeklyTotal = WeeklyTotal(sale)
		sales = append(sales, sale)
	}
	return sales
}

// validateSubmission checks the required fields of a final submission.
// Drafts pass through untouched; the form auto-saves long before the
// fields are complete.
func validateSubmission(req dto.SubmissionRequest) error {
	if req.Draft() {
		return nil
	}

	switch {
	case req.District == "":
		return appErrors.Clone(appErrors.ErrValidation, "district is required")
	case !models.ValidDistrict(req.District):
		return appErrors.Clone(appErrors.ErrValidation, "district must be a valid Sri Lankan district")
	case req.City == "":
		return appErrors.Clone(appErrors.ErrValidation, "city is required")
	case req.DealerName == "":
		return appErrors.Clone(appErrors.ErrValidation, "dealer name is required")
	case req.DealerNumber == "":
		return appErrors.Clone(appErrors.ErrValidation, "dealer number is required")
	case !dealerNumberPattern.MatchString(req.DealerNumber):
		return appErrors.Clone(appErrors.ErrValidation, "dealer number must contain only numbers")
	case len(req.DealerNumber) != models.DealerNumberLength:
		return appErrors.Clone(appErrors.ErrValidation, "dealer number must be exactly 6 digits")
	case req.AssistantName == "":
		return appErrors.Clone(appErrors.ErrValidation, "assistant name is required")
	case req.SalesMethod == "":
		return appErrors.Clone(appErrors.ErrValidation, "sales method is required")
	case req.SalesLocation == "":
		return appErrors.Clone(appErrors.ErrValidation, "sales location is required")
	case req.DailySales == nil:
		return appErrors.Clone(appErrors.ErrValidation, "daily sales data is required")
	}

	for _, sale := range req.DailySales {
		if !models.ValidBrand(sale.BrandName) {
			return appErrors.Clone(appErrors.ErrValidation, "unknown lottery brand: "+sale.BrandName)
		}
	}
	return nil
}
