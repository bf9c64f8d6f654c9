package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/http/middleware"
)

// responseHandler implements the ResponseHandler interface
type responseHandler struct {
	logger Logger
}

// NewResponseHandler creates a new instance of ResponseHandler
func NewResponseHandler(logger Logger) ResponseHandler {
	return &responseHandler{
		logger: logger,
	}
}

// SuccessResponse sends a success response with optional data and message
func (h *responseHandler) SuccessResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 success response
func (h *responseHandler) CreatedResponse(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// PaginatedResponse sends a success response with pagination metadata
func (h *responseHandler) PaginatedResponse(c *gin.Context, data interface{}, pagination *Pagination, message string) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Response: Response{
			Success: true,
			Message: message,
			Data:    data,
		},
		Pagination: pagination,
	})
}

// ErrorResponse sends an error response with status code, error code, and message
func (h *responseHandler) ErrorResponse(c *gin.Context, status int, code, message string, err error) {
	if err != nil {
		h.logFor(c).LogError(err, message)
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// ValidationErrorResponse sends a validation error response
func (h *responseHandler) ValidationErrorResponse(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &Error{
			Code:    apperrors.CodeValidation,
			Message: message,
			Field:   field,
		},
	})
}

// NotFoundResponse sends a not found error response
func (h *responseHandler) NotFoundResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusNotFound, apperrors.CodeNotFound, message, nil)
}

// UnauthorizedResponse sends an unauthorized error response
func (h *responseHandler) UnauthorizedResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

// ForbiddenResponse sends a forbidden error response
func (h *responseHandler) ForbiddenResponse(c *gin.Context, message string) {
	h.ErrorResponse(c, http.StatusForbidden, apperrors.CodeForbidden, message, nil)
}

// ConflictResponse sends a conflict error response
func (h *responseHandler) ConflictResponse(c *gin.Context, code, message string) {
	h.ErrorResponse(c, http.StatusConflict, code, message, nil)
}

// InternalErrorResponse sends an internal server error response
func (h *responseHandler) InternalErrorResponse(c *gin.Context, message string, err error) {
	if err != nil {
		h.logFor(c).LogError(err, message)
	}

	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error: &Error{
			Code:    apperrors.CodeInternal,
			Message: apperrors.ErrMsgInternal,
		},
	})
}

// HandleError maps err to its response. Client errors keep their own message;
// anything unclassified is logged with message and hidden behind a generic 500.
func (h *responseHandler) HandleError(c *gin.Context, err error, message string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.InternalErrorResponse(c, message, err)
		return
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    apperrors.Code(err),
			Message: err.Error(),
			Field:   apperrors.Field(err),
		},
	})
}

func (h *responseHandler) logFor(c *gin.Context) Logger {
	if _, ok := c.Get(middleware.LoggerKey); ok {
		return middleware.GetLogger(c)
	}
	return h.logger
}
