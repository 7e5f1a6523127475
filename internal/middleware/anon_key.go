package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/models/dto"
)

// AnonKeyHeader carries the project-wide anonymous access key.
const AnonKeyHeader = "apikey"

// AnonKey rejects requests that do not present the configured anonymous key.
// Browsers cannot set headers on a websocket upgrade, so the key is also
// accepted as the "apikey" query parameter.
func AnonKey(key string) gin.HandlerFunc {
	expected := []byte(key)

	return func(c *gin.Context) {
		presented := c.GetHeader(AnonKeyHeader)
		if presented == "" {
			presented = c.Query(AnonKeyHeader)
		}

		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidAPIKey, "Invalid API key")
			errorDetail = errorDetail.WithDetails("The apikey header is missing or does not match")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
