package mw

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cancelflow/internal/csrf"
)

// CSRF makes sure every response carries the token cookies and rejects
// state-changing requests whose header token does not match the cookie.
func CSRF(g *csrf.Guard, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := Logger(c, l)

		if _, err := g.IssueOrGet(c.Writer, c.Request); err != nil {
			log.Error("csrf: issue token failed", slog.Any("err", err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if err := g.VerifyRequest(c.Request); err != nil {
			status, msg := http.StatusForbidden, err.Error()
			var ce *csrf.Error
			if errors.As(err, &ce) {
				status, msg = ce.Status, ce.Msg
			}
			log.Warn("csrf: request rejected",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}
