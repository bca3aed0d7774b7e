// File: internal/room/handler.go
package room

import (
	"errors"
	"strconv"

	"ktm_rentals_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for room handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new room handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for room operations. Browsing is public;
// ownership-scoped routes take the auth middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	roomGroup := router.Group("/rooms")
	{
		roomGroup.GET("", h.listRooms)
		roomGroup.GET("/search", h.searchRooms)
		roomGroup.GET("/price-range", h.filterByPriceRange)
		roomGroup.GET("/:id", h.getRoomByID)

		authenticated := roomGroup.Group("")
		authenticated.Use(authMW)
		{
			authenticated.GET("/my-rooms", h.getMyRooms)
			authenticated.PUT("/:id", h.updateRoom)
			authenticated.DELETE("/:id", h.deleteRoom)
		}
	}
}

func (h *Handler) listRooms(c *gin.Context) {
	opts := RefineOptions{
		Query:    c.Query("q"),
		Bedrooms: c.Query("bedrooms"),
		Sort:     SortKey(c.Query("sort")),
	}
	rooms, err := h.service.GetRooms(c.Request.Context(), opts)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Rooms retrieved successfully.", ToRoomResponses(rooms))
}

func (h *Handler) searchRooms(c *gin.Context) {
	term := c.Query("q")
	rooms, err := h.service.SearchRooms(c.Request.Context(), term)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Search results retrieved successfully.", ToRoomResponses(rooms))
}

func (h *Handler) filterByPriceRange(c *gin.Context) {
	min, err := strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid 'min' price."))
		return
	}
	max, err := strconv.ParseFloat(c.DefaultQuery("max", "0"), 64)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid 'max' price."))
		return
	}

	rooms, err := h.service.FilterByPriceRange(c.Request.Context(), min, max)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Rooms retrieved successfully.", ToRoomResponses(rooms))
}

func (h *Handler) getRoomByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid room ID format."))
		return
	}
	room, err := h.service.GetRoomByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Room retrieved successfully.", ToRoomResponse(room))
}

func (h *Handler) getMyRooms(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	rooms, err := h.service.GetRoomsByOwner(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Your rooms retrieved successfully.", ToRoomResponses(rooms))
}

func (h *Handler) updateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid room ID format."))
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Room update: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	callerID := common.GetUserIDFromContext(c)
	callerRole := common.GetUserRoleFromContext(c)
	room, err := h.service.UpdateRoom(c.Request.Context(), id, req, callerID, callerRole)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Room updated successfully.", ToRoomResponse(room))
}

func (h *Handler) deleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid room ID format."))
		return
	}

	callerID := common.GetUserIDFromContext(c)
	callerRole := common.GetUserRoleFromContext(c)
	if err := h.service.DeleteRoom(c.Request.Context(), id, callerID, callerRole); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
