// File: internal/submission/handler.go
package submission

import (
	"errors"

	"ktm_rentals_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for submission handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new submission handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for the verification workflow. All
// routes require authentication; the admin group additionally requires the
// admin role.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	subGroup := router.Group("/submissions")
	subGroup.Use(authMW)
	{
		subGroup.POST("", h.submit)
		subGroup.GET("/mine", h.listMine)
		subGroup.DELETE("/:id", h.remove)

		adminGroup := subGroup.Group("/admin")
		adminGroup.Use(adminMW)
		{
			adminGroup.GET("/pending", h.listPending)
			adminGroup.POST("/:id/approve", h.approve)
			adminGroup.POST("/:id/reject", h.reject)
		}
	}
}

func (h *Handler) submit(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Property submission: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	ownerID := common.GetUserIDFromContext(c)
	if ownerID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), ownerID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Property submitted for verification.", ToSubmissionResponse(sub))
}

func (h *Handler) listMine(c *gin.Context) {
	ownerID := common.GetUserIDFromContext(c)
	if ownerID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	subs, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Your submissions retrieved successfully.", ToSubmissionResponses(subs))
}

func (h *Handler) listPending(c *gin.Context) {
	subs, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Pending submissions retrieved successfully.", ToSubmissionResponses(subs))
}

func (h *Handler) approve(c *gin.Context) {
	h.decide(c, DecisionApprove)
}

func (h *Handler) reject(c *gin.Context) {
	h.decide(c, DecisionReject)
}

func (h *Handler) decide(c *gin.Context, decision Decision) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid submission ID format."))
		return
	}

	callerID := common.GetUserIDFromContext(c)
	callerRole := common.GetUserRoleFromContext(c)
	sub, err := h.service.Decide(c.Request.Context(), id, decision, callerID, callerRole)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Submission "+string(sub.Status)+".", ToSubmissionResponse(sub))
}

func (h *Handler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid submission ID format."))
		return
	}

	callerID := common.GetUserIDFromContext(c)
	callerRole := common.GetUserRoleFromContext(c)
	if err := h.service.Remove(c.Request.Context(), id, callerID, callerRole); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
