// File: internal/user/handler.go
package user

import (
	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/loginlog"
	"ktm_rentals_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service  shared.Service
	loginLog loginlog.Service
	logger   *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service shared.Service, loginLog loginlog.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:  service,
		loginLog: loginLog,
		logger:   logger,
	}
}

// RegisterRoutes sets up the routes for user operations. Accounts are
// provisioned by the auth middleware on first request, so there is no
// register endpoint; everything here requires authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := router.Group("/users")
	userGroup.Use(authMW)
	{
		userGroup.GET("/me", h.getMe)
		userGroup.GET("/me/logins", h.getMyLoginHistory)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		h.logger.Error("User ID not found in context for /me", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	usr, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) getMyLoginHistory(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	page, pageSize := common.GetPaginationParams(c)
	events, pagination, err := h.loginLog.GetLoginHistory(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Login history retrieved successfully.", events, pagination)
}
