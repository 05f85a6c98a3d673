package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vatledger/internal/domain"
	"vatledger/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// VAT configuration problems are 422: the request was fine, the catalog data is not.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "ORDER_NOT_FOUND", "order not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "MENU_ITEM_NOT_FOUND", "menu item not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrDuplicateItem):
		return http.StatusConflict, "DUPLICATE_MENU_ITEM", "a menu item with this name already exists"
	case errors.Is(err, domain.ErrInvalidItem):
		return http.StatusBadRequest, "INVALID_MENU_ITEM", err.Error()
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, "INVALID_PRICE", err.Error()
	case errors.Is(err, domain.ErrInvalidVATType):
		return http.StatusBadRequest, "INVALID_VAT_TYPE", err.Error()
	case errors.Is(err, domain.ErrVATRateUnset):
		return http.StatusUnprocessableEntity, "VAT_RATE_UNSET", err.Error()
	case errors.Is(err, domain.ErrVATRateInvalid):
		return http.StatusUnprocessableEntity, "VAT_RATE_INVALID", err.Error()
	case errors.Is(err, domain.ErrMixedItemNoComponents):
		return http.StatusUnprocessableEntity, "MIXED_ITEM_NO_COMPONENTS", err.Error()
	case errors.Is(err, domain.ErrMixedItemUnreconciled):
		return http.StatusUnprocessableEntity, "MIXED_ITEM_UNRECONCILED", err.Error()
	case errors.Is(err, domain.ErrLineItemUnresolvable):
		return http.StatusUnprocessableEntity, "LINE_ITEM_UNRESOLVABLE", "an order line no longer references a menu item; VAT cannot be derived"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest, "INVALID_DATE_RANGE", err.Error()
	case errors.Is(err, domain.ErrInvalidOrderSource):
		return http.StatusBadRequest, "INVALID_ORDER_SOURCE", err.Error()
	case errors.Is(err, domain.ErrInvalidTimezone):
		return http.StatusBadRequest, "INVALID_TIMEZONE", err.Error()
	case errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest, "INVALID_CURRENCY", err.Error()
	case errors.Is(err, domain.ErrNoCustomerMail):
		return http.StatusUnprocessableEntity, "NO_CUSTOMER_EMAIL", "order has no customer email address"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "report upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts tenant ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	tenantID, err = middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return tenantID, userID, role, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.GetRequestID(c), err)
	}
	RespondError(c, status, code, msg)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseIDParam parses a UUID path parameter, writing a 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
