package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/strfmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cancelflow/internal/csrf"
	"cancelflow/internal/entity/generated"
	"cancelflow/internal/gateways/http/mw"
	"cancelflow/internal/usecase"
)

type routerDeps struct {
	useCases   UseCases
	log        *slog.Logger
	guard      *csrf.Guard
	userHeader string
	gatherer   prometheus.Gatherer
}

// errText holds the per-endpoint wording for error classes whose message differs between endpoints.
type errText struct {
	badRequest   string
	notFound     string
	invalidState string
	storage      string
}

func setupRouter(r *gin.Engine, d routerDeps) {
	r.HandleMethodNotAllowed = true

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if d.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))
	}

	{
		api := r.Group("/api", mw.Identity(d.userHeader), mw.CSRF(d.guard, d.log))
		setupCancellationsStart(api, d)
		setupCancellationsID(api, d)
		setupDownsells(api, d)
	}
}

func setupCancellationsStart(r *gin.RouterGroup, d routerDeps) {
	text := errText{
		badRequest:   "Invalid request",
		notFound:     "Subscription not found",
		invalidState: "Invalid subscription",
		storage:      "Failed to start cancellation",
	}

	// cookies are issued by the CSRF middleware
	r.GET("/cancellations/start", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.POST("/cancellations/start", func(c *gin.Context) {
		log := mw.Logger(c, d.log)
		if !requireAcceptJSON(c) || !requireJSONBody(c) {
			return
		}

		raw, err := readBody(c)
		if err != nil {
			writeError(c, log, "start", err, text)
			return
		}
		subID, err := decodeStart(raw)
		if err != nil {
			writeError(c, log, "start", err, text)
			return
		}

		userID, ok := mw.UserID(c)
		if !ok {
			writeError(c, log, "start", usecase.ErrUnauthorized, text)
			return
		}

		res, err := d.useCases.Cancel.Start(c, userID, subID)
		if err != nil {
			writeError(c, log.With(
				slog.String("subscription_id", subID.String()),
				slog.String("user_id", userID.String()),
			), "start", err, text)
			return
		}

		msg := "start created new cancellation"
		if res.Resumed {
			msg = "start resumed existing cancellation"
		}
		log.Info(msg,
			slog.String("cancellation_id", res.CancellationID.String()),
			slog.String("subscription_id", subID.String()),
			slog.String("user_id", userID.String()),
			slog.String("variant", string(res.Variant)),
		)
		c.JSON(http.StatusOK, generated.StartCancellationResponse{
			CancellationID: res.CancellationID,
			Variant:        string(res.Variant),
			PlanPriceCents: res.PlanPriceCents,
		})
	})

	r.OPTIONS("/cancellations/start", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "GET,POST,OPTIONS")
		c.Status(http.StatusNoContent)
	})
}

func setupCancellationsID(r *gin.RouterGroup, d routerDeps) {
	patchText := errText{
		badRequest:   "Invalid payload",
		notFound:     "Not found",
		invalidState: "Invalid state",
		storage:      "Update failed",
	}
	completeText := errText{
		badRequest:   "Invalid request",
		notFound:     "Not found",
		invalidState: "Invalid state",
		storage:      "Failed to complete cancellation",
	}

	r.PATCH("/cancellations/:id", func(c *gin.Context) {
		log := mw.Logger(c, d.log)
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c, log, "patch", patchText)
		if !ok {
			return
		}
		if !requireJSONBody(c) {
			return
		}

		raw, err := readBody(c)
		if err != nil {
			writeError(c, log, "patch", err, patchText)
			return
		}
		in, err := decodePatch(raw)
		if err != nil {
			writeError(c, log, "patch", err, patchText)
			return
		}

		userID, ok := mw.UserID(c)
		if !ok {
			writeError(c, log, "patch", usecase.ErrUnauthorized, patchText)
			return
		}

		log = log.With(slog.String("cancellation_id", id.String()), slog.String("user_id", userID.String()))
		if err := d.useCases.Cancel.Patch(c, userID, id, in); err != nil {
			writeError(c, log, "patch", err, patchText)
			return
		}

		log.Info("patch updated cancellation")
		c.JSON(http.StatusOK, generated.OkResponse{Ok: true})
	})

	r.OPTIONS("/cancellations/:id", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "PATCH,OPTIONS")
		c.Status(http.StatusNoContent)
	})

	r.POST("/cancellations/:id/complete", func(c *gin.Context) {
		log := mw.Logger(c, d.log)
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c, log, "complete", completeText)
		if !ok {
			return
		}
		userID, ok := mw.UserID(c)
		if !ok {
			writeError(c, log, "complete", usecase.ErrUnauthorized, completeText)
			return
		}

		log = log.With(slog.String("cancellation_id", id.String()), slog.String("user_id", userID.String()))
		if err := d.useCases.Cancel.Complete(c, userID, id); err != nil {
			writeError(c, log, "complete", err, completeText)
			return
		}

		log.Info("complete: success")
		c.JSON(http.StatusOK, generated.OkResponse{Ok: true})
	})

	r.OPTIONS("/cancellations/:id/complete", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "POST,OPTIONS")
		c.Status(http.StatusNoContent)
	})
}

func setupDownsells(r *gin.RouterGroup, d routerDeps) {
	text := errText{
		badRequest:   "Invalid request",
		notFound:     "Not found",
		invalidState: "Invalid state",
		storage:      "Failed to accept offer",
	}

	r.POST("/downsells/:id/accept", func(c *gin.Context) {
		log := mw.Logger(c, d.log)
		if !requireAcceptJSON(c) {
			return
		}
		id, ok := pathID(c, log, "downsells.accept", text)
		if !ok {
			return
		}
		userID, ok := mw.UserID(c)
		if !ok {
			writeError(c, log, "downsells.accept", usecase.ErrUnauthorized, text)
			return
		}

		log = log.With(slog.String("cancellation_id", id.String()), slog.String("user_id", userID.String()))
		if err := d.useCases.Cancel.AcceptDownsell(c, userID, id); err != nil {
			writeError(c, log, "downsells.accept", err, text)
			return
		}

		log.Info("downsells.accept: success")
		c.JSON(http.StatusOK, generated.OkResponse{Ok: true})
	})

	r.OPTIONS("/downsells/:id/accept", func(c *gin.Context) {
		c.Writer.Header().Set("Allow", "POST,OPTIONS")
		c.Status(http.StatusNoContent)
	})
}

func pathID(c *gin.Context, log *slog.Logger, op string, text errText) (strfmt.UUID, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, log, op, errors.Join(usecase.ErrInvalidPayload, err), text)
		return "", false
	}
	return id, true
}

func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		return nil, errors.Join(usecase.ErrInvalidPayload, err)
	}
	return raw, nil
}

// writeError logs err through the request logger and answers with the mapped status.
func writeError(c *gin.Context, log *slog.Logger, op string, err error, text errText) {
	status, msg := http.StatusInternalServerError, text.storage
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, usecase.ErrForbidden):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, usecase.ErrNotFound):
		status, msg = http.StatusNotFound, text.notFound
	case errors.Is(err, usecase.ErrInvalidState):
		status, msg = http.StatusBadRequest, text.invalidState
	case errors.Is(err, usecase.ErrInvalidPayload):
		status, msg = http.StatusBadRequest, text.badRequest
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(c, level, op+": failed", slog.Int("status", status), slog.String("err", err.Error()))
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func requireJSONBody(c *gin.Context) bool {
	if ct := c.ContentType(); ct != "" && ct != "application/json" {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Content-Type must be application/json"})
		return false
	}
	return true
}

func acceptsJSON(h string) bool {
	if h == "" || h == "*/*" {
		return true
	}
	parts := strings.Split(h, ",")
	for _, p := range parts {
		mt := strings.TrimSpace(strings.SplitN(p, ";", 2)[0])
		if mt == "application/json" || mt == "*/*" {
			return true
		}
	}
	return false
}

func requireAcceptJSON(c *gin.Context) bool {
	if acceptsJSON(c.GetHeader("Accept")) {
		return true
	}
	c.JSON(http.StatusNotAcceptable, gin.H{"error": "Accept application/json only"})
	return false
}
