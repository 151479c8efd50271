// server/internal/api/handlers/user_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"parcelio-api-server/internal/lib/apierr"
	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users UserRepository
	Log   *slog.Logger
}

// GetAllUsers returns every user document.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		requestLog(h.Log, c).Error("failed to list users", sl.Err(err))
		apierr.Respond(c, apierr.NewDatabaseError("Failed to fetch users"))
		return
	}

	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}
