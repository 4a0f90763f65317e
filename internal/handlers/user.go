package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/services"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List users failed", "error", err)
		RespondAppError(c, err)
		return
	}
	dtos := make([]types.UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, user.DTO())
	}
	RespondOK(c, dtos)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, orders, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	dto := user.DTO()
	for _, order := range orders {
		dto.Orders = append(dto.Orders, order.DTO())
	}
	RespondOK(c, dto)
}

func (h *UserHandler) ListOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orders, err := h.userService.ListOrders(c.Request.Context(), id)
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

func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, user.DTO())
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.userService.Update(c.Request.Context(), id, &req); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

type authenticateRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *UserHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user, err := h.userService.Authenticate(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, user.DTO())
}
