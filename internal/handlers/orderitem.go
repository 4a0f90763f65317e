package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type OrderItemHandler struct {
	log              *logger.Logger
	orderItemService services.OrderItemService
}

func NewOrderItemHandler(log *logger.Logger, orderItemService services.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{
		log:              log.With("handler", "OrderItemHandler"),
		orderItemService: orderItemService,
	}
}

func (h *OrderItemHandler) List(c *gin.Context) {
	items, err := h.orderItemService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List order items failed", "error", err)
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, item.DTO())
	}
	RespondOK(c, dtos)
}

func (h *OrderItemHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.orderItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, item.DTO())
}

func (h *OrderItemHandler) ListByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	items, err := h.orderItemService.ListByOrder(c.Request.Context(), orderID)
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

func (h *OrderItemHandler) Create(c *gin.Context) {
	var req types.OrderItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.orderItemService.Create(c.Request.Context(), &req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, item.DTO())
}

func (h *OrderItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req types.OrderItemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.ItemID != 0 && req.ItemID != id {
		RespondError(c, http.StatusBadRequest, "id_mismatch", nil)
		return
	}
	if err := h.orderItemService.Update(c.Request.Context(), id, &req); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *OrderItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderItemService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

type addMultipleRequest struct {
	OrderID    uint                 `json:"orderId"`
	OrderItems []types.OrderItemDTO `json:"orderItems"`
}

func (h *OrderItemHandler) AddMultiple(c *gin.Context) {
	var req addMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	items, err := h.orderItemService.AddMultiple(c.Request.Context(), req.OrderID, req.OrderItems)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, item.DTO())
	}
	RespondCreated(c, dtos)
}
