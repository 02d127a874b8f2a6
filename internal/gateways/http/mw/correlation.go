package mw

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationHeader carries the request correlation id in both directions.
const CorrelationHeader = "x-correlation-id"

const (
	correlationKey = "mw.correlation_id"
	loggerKey      = "mw.logger"

	maxCorrelationLen = 128
)

// Correlation takes the caller's correlation id or generates one, echoes it on
// the response and stores a request logger carrying it.
func Correlation(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationHeader)
		if id == "" || len(id) > maxCorrelationLen {
			id = uuid.NewString()
		}
		c.Header(CorrelationHeader, id)
		c.Set(correlationKey, id)
		c.Set(loggerKey, l.With(slog.String("correlation_id", id)))
		c.Next()
	}
}

// CorrelationID returns the id set by Correlation, or "".
func CorrelationID(c *gin.Context) string {
	return c.GetString(correlationKey)
}

// Logger returns the request logger, falling back to l outside Correlation.
func Logger(c *gin.Context, l *slog.Logger) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if rl, ok := v.(*slog.Logger); ok {
			return rl
		}
	}
	return l
}
