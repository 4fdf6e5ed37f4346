// internal/handlers/events.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/services"
)

type EventHandler struct {
	store *services.StoreService
}

func NewEventHandler(store *services.StoreService) *EventHandler {
	return &EventHandler{store: store}
}

// GET /events
func (h *EventHandler) Stream(c *gin.Context) {
	events := make(chan services.ChangeEvent, 16)
	unsubscribe := h.store.Subscribe(func(e services.ChangeEvent) {
		// Slow clients drop events rather than block mutations.
		select {
		case events <- e:
		default:
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("ready", gin.H{"status": "subscribed"})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case e := <-events:
			c.SSEvent(string(e.Kind), e)
			return true
		}
	})
}
