package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/site-inventory/internal/domain/errs"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// respondError maps the domain error kinds to HTTP statuses: validation 400,
// not-found 404, business rule 409, external service 502, anything else 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
		code = "validation_error"
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, errs.ErrBusiness):
		status = http.StatusConflict
		code = "business_rule_violation"
	case errors.Is(err, errs.ErrExternal):
		status = http.StatusBadGateway
		code = "external_service_error"
	}
	c.JSON(status, errorEnvelope{Error: apiError{Message: err.Error(), Code: code}})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: err.Error(), Code: "validation_error"}})
}

func parseLimitOffset(c *gin.Context) (limit, offset int) {
	limit = 100
	offset = 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func parsePageSize(c *gin.Context) (page, size int) {
	page = 1
	size = 20
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("size", "20")); err == nil && v > 0 && v <= 200 {
		size = v
	}
	return page, size
}

func pageOf(limit, offset int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}
