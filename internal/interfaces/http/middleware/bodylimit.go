package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/shipping/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose body exceeds maxBytes. Every
// payload this API accepts is a small JSON document; batch refund and
// SCAN form submissions top out at a few kilobytes of shipment IDs.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// Content-Length can lie; cap the actual read as well.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
