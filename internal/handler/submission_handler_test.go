package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasunw/lottery-sales-api/internal/middleware"
	"github.com/kasunw/lottery-sales-api/internal/models"
	"github.com/kasunw/lottery-sales-api/internal/service"
)

type memorySubmissionRepo struct {
	byID map[string]*models.Submission
}

func newMemorySubmissionRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{byID: make(map[string]*models.Submission)}
}

func (m *memorySubmissionRepo) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, int, error) {
	subs := make([]models.Submission, 0, len(m.byID))
	for _, sub := range m.byID {
		subs = append(subs, *sub)
	}
	return subs, len(subs), nil
}

func (m *memorySubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	sub, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *sub
	return &copied, nil
}

func (m *memorySubmissionRepo) CreateWithDailySales(ctx context.Context, sub *models.Submission, sales []models.DailySale) error {
	if sub.ID == "" {
		sub.ID = "sub-1"
	}
	stored := *sub
	stored.DailySales = sales
	m.byID[sub.ID] = &stored
	return nil
}

func (m *memorySubmissionRepo) UpdateWithDailySales(ctx context.Context, sub *models.Submission, sales []models.DailySale) error {
	if _, ok := m.byID[sub.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *sub
	stored.DailySales = sales
	m.byID[sub.ID] = &stored
	return nil
}

func (m *memorySubmissionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func assistantClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "spa-1", Username: "assistant", Role: models.RoleSalesPromotionAssistant}
}

type envelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
}

func TestSubmissionHandlerSaveDraft(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newMemorySubmissionRepo()
	handler := NewSubmissionHandler(service.NewSubmissionService(repo, nil))

	body := `{"district":"Colombo","dailySales":[{"brandName":"Sasiri","monday":"10"}]}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, assistantClaims())

	handler.Save(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, true, env.Data["isDraft"])
	assert.Equal(t, float64(10), env.Data["totalTickets"])
}

func TestSubmissionHandlerSaveFinalValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubmissionHandler(service.NewSubmissionService(newMemorySubmissionRepo(), nil))

	body := `{"isDraft":false,"district":"Colombo"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, assistantClaims())

	handler.Save(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "city is required", env.Error["message"])
}

func TestSubmissionHandlerGetForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newMemorySubmissionRepo()
	repo.byID["sub-9"] = &models.Submission{ID: "sub-9", UserID: "someone-else"}
	handler := NewSubmissionHandler(service.NewSubmissionService(repo, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/submissions/sub-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "sub-9"}}
	c.Set(middleware.ContextUserKey, assistantClaims())

	handler.Get(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmissionHandlerDeleteMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubmissionHandler(service.NewSubmissionService(newMemorySubmissionRepo(), nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/submissions/ghost", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	c.Set(middleware.ContextUserKey, assistantClaims())

	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmissionHandlerUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSubmissionHandler(service.NewSubmissionService(newMemorySubmissionRepo(), nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/submissions", nil)

	handler.List(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
