package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const rootMessage = "Parcelio Server is running 🚀"

type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

// Healthz reports whether the document store answers a ping.
func (h *HealthHandler) Healthz(c *gin.Context) {
	if h.Ping != nil {
		if err := h.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
