package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/requestdata"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError maps the protocol error taxonomy onto HTTP statuses.
func RespondAppError(c *gin.Context, err error) {
	RespondError(c, apperr.HTTPStatus(err), apperr.Code(err), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return 0, false
	}
	return uint(id), true
}

// requireAdmin enforces the boundary rule that only admins may delete.
func requireAdmin(c *gin.Context) bool {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || !rd.IsAdmin {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return false
	}
	return true
}
