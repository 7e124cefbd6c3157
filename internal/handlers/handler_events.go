package handlers

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/obeng-labs/agencyledger/internal/events"
	"github.com/obeng-labs/agencyledger/internal/middleware"
)

// eventsHandler streams company events to dashboard clients over SSE.
type eventsHandler struct {
	broadcaster *events.Broadcaster
}

func newEventsHandler(broadcaster *events.Broadcaster) *eventsHandler {
	return &eventsHandler{broadcaster: broadcaster}
}

// registerEventRoutes mounts the live event stream on the company group.
func registerEventRoutes(rg *gin.RouterGroup, broadcaster *events.Broadcaster) {
	h := newEventsHandler(broadcaster)
	rg.GET("/events", h.stream)
}

func (h *eventsHandler) stream(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	ch := h.broadcaster.Subscribe(c.Request.Context(), actor.CompanyID)
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		evt, open := <-ch
		if !open {
			return false
		}
		data, err := json.Marshal(evt)
		if err != nil {
			logger.Error("Failed to marshal event for stream", slog.String("event_id", evt.ID), slog.String("error", err.Error()))
			return true
		}
		c.SSEvent(string(evt.Type), string(data))
		return true
	})
}
