package health

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ResponseHandler defines the interface for handling HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
}

// Logger interface for logging operations
type Logger interface {
	LogWarn(msg string, fields map[string]interface{})
}
