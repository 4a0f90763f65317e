package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type DestinationHandler struct {
	log                *logger.Logger
	destinationService services.DestinationService
}

func NewDestinationHandler(log *logger.Logger, destinationService services.DestinationService) *DestinationHandler {
	return &DestinationHandler{
		log:                log.With("handler", "DestinationHandler"),
		destinationService: destinationService,
	}
}

func (h *DestinationHandler) List(c *gin.Context) {
	destinations, err := h.destinationService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List destinations failed", "error", err)
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.DestinationDTO, 0, len(destinations))
	for _, destination := range destinations {
		dtos = append(dtos, destination.DTO())
	}
	RespondOK(c, dtos)
}

func (h *DestinationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	destination, restaurants, err := h.destinationService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dto := destination.DTO()
	for _, restaurant := range restaurants {
		dto.Restaurants = append(dto.Restaurants, restaurant.DTO())
	}
	RespondOK(c, dto)
}

func (h *DestinationHandler) ListRestaurants(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	restaurants, err := h.destinationService.ListRestaurants(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.RestaurantDTO, 0, len(restaurants))
	for _, restaurant := range restaurants {
		dtos = append(dtos, restaurant.DTO())
	}
	RespondOK(c, dtos)
}

func (h *DestinationHandler) Create(c *gin.Context) {
	var req types.DestinationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	destination, err := h.destinationService.Create(c.Request.Context(), &req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, destination.DTO())
}

func (h *DestinationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req types.DestinationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.destinationService.Update(c.Request.Context(), id, &req); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *DestinationHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.destinationService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}
