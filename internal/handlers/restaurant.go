package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type RestaurantHandler struct {
	log               *logger.Logger
	restaurantService services.RestaurantService
}

func NewRestaurantHandler(log *logger.Logger, restaurantService services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{
		log:               log.With("handler", "RestaurantHandler"),
		restaurantService: restaurantService,
	}
}

func (h *RestaurantHandler) List(c *gin.Context) {
	restaurants, err := h.restaurantService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List restaurants failed", "error", err)
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.RestaurantDTO, 0, len(restaurants))
	for _, restaurant := range restaurants {
		dtos = append(dtos, restaurant.DTO())
	}
	RespondOK(c, dtos)
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	restaurant, orders, err := h.restaurantService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dto := restaurant.DTO()
	for _, order := range orders {
		dto.Orders = append(dto.Orders, order.DTO())
	}
	RespondOK(c, dto)
}

func (h *RestaurantHandler) ListOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orders, err := h.restaurantService.ListOrders(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, order.DTO())
	}
	RespondOK(c, dtos)
}

func (h *RestaurantHandler) ListByDestination(c *gin.Context) {
	destinationID, ok := parseIDParam(c, "destinationId")
	if !ok {
		return
	}
	restaurants, err := h.restaurantService.ListByDestination(c.Request.Context(), destinationID)
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

func (h *RestaurantHandler) Create(c *gin.Context) {
	var req types.RestaurantDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	restaurant, err := h.restaurantService.Create(c.Request.Context(), &req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, restaurant.DTO())
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req types.RestaurantDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.restaurantService.Update(c.Request.Context(), id, &req); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *RestaurantHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.restaurantService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}
