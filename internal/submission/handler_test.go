// File: internal/submission/handler_test.go
package submission

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ktm_rentals_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuth injects an authenticated principal the way the real auth
// middleware would after verifying a token.
func stubAuth(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(common.UserIDKey, userID)
		c.Set(common.UserRoleKey, role)
		c.Next()
	}
}

func stubAdminGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if common.GetUserRoleFromContext(c) != common.RoleAdmin {
			common.RespondWithError(c, common.ErrForbidden)
			return
		}
		c.Next()
	}
}

func setupRouter(t *testing.T, repo Repository, userID uuid.UUID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(repo, new(MockRoomService), zap.NewNop())
	handler := NewHandler(svc, zap.NewNop())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, stubAuth(userID, role), stubAdminGate())
	return router
}

func TestSubmitEndpoint_Created(t *testing.T) {
	mockRepo := new(MockSubmissionRepository)
	ownerID := uuid.New()
	router := setupRouter(t, mockRepo, ownerID, common.RoleUser)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(sub *PendingProperty) bool {
		return sub.OwnerID == ownerID && sub.Status == StatusPending
	})).Return(nil)

	payload := map[string]interface{}{
		"title":    "Sunny room in Patan",
		"location": "Patan, Lalitpur",
		"price":    15000,
		"bedrooms": 1,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp common.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	mockRepo.AssertExpectations(t)
}

func TestSubmitEndpoint_ValidationError(t *testing.T) {
	mockRepo := new(MockSubmissionRepository)
	router := setupRouter(t, mockRepo, uuid.New(), common.RoleUser)

	// Missing title and location, price not positive.
	body := []byte(`{"price": 0}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminPendingEndpoint_ForbiddenForRegularUser(t *testing.T) {
	mockRepo := new(MockSubmissionRepository)
	router := setupRouter(t, mockRepo, uuid.New(), common.RoleUser)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions/admin/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminPendingEndpoint_ListsPendingForAdmin(t *testing.T) {
	mockRepo := new(MockSubmissionRepository)
	router := setupRouter(t, mockRepo, uuid.New(), common.RoleAdmin)

	pending := []PendingProperty{*pendingSubmission(uuid.New()), *pendingSubmission(uuid.New())}
	mockRepo.On("FindPending", mock.Anything).Return(pending, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/submissions/admin/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []SubmissionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestRejectEndpoint_TerminalConflict(t *testing.T) {
	mockRepo := new(MockSubmissionRepository)
	adminID := uuid.New()
	router := setupRouter(t, mockRepo, adminID, common.RoleAdmin)

	sub := pendingSubmission(uuid.New())
	sub.Status = StatusRejected
	mockRepo.On("FindByID", mock.Anything, sub.ID).Return(sub, nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/submissions/admin/"+sub.ID.String()+"/reject", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRemoveEndpoint_InvalidID(t *testing.T) {
	mockRepo := new(MockSubmissionRepository)
	router := setupRouter(t, mockRepo, uuid.New(), common.RoleUser)

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/submissions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
