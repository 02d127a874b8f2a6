package mw

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// DefaultUserHeader is the trusted identity header.
const DefaultUserHeader = "x-user-id"

const userIDKey = "mw.user_id"

// Identity resolves the caller from a trusted header. It never rejects: handlers
// decide when a missing identity matters, so body validation can run first.
// Values that are not UUIDs count as missing.
func Identity(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultUserHeader
	}
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(header))
		if raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(userIDKey, strfmt.UUID(id.String()))
			}
		}
		c.Next()
	}
}

// UserID returns the identity resolved by Identity.
func UserID(c *gin.Context) (strfmt.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(strfmt.UUID)
	return id, ok && id != ""
}
