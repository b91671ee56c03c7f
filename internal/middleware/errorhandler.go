package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/taifexpulse/internal/domain/dto"
	"github.com/guttosm/taifexpulse/internal/logger"
)

// ErrorHandler turns errors accumulated on the gin context into a single
// standardized 500 response, unless a handler already wrote one.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal error", err))
}

// AbortWithError logs the error and aborts the request with a standardized
// JSON body at the given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	logger.L().Warn().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(message)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
