package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService services.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		log:          log.With("handler", "OrderHandler"),
		orderService: orderService,
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List orders failed", "error", err)
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, order.DTO())
	}
	RespondOK(c, dtos)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, order.DTO())
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
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

func (h *OrderHandler) ListByRestaurant(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurantId")
	if !ok {
		return
	}
	orders, err := h.orderService.ListByRestaurant(c.Request.Context(), restaurantID)
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

func (h *OrderHandler) ListItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.orderService.ListItems(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, item.DTO())
	}
	RespondOK(c, dtos)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req types.OrderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, order.DTO())
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req types.OrderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.OrderID != 0 && req.OrderID != id {
		RespondError(c, http.StatusBadRequest, "id_mismatch", nil)
		return
	}
	skipped, err := h.orderService.Update(c.Request.Context(), id, &req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"skippedItems": skipped})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}
