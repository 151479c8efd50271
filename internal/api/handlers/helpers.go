package handlers

import (
	"errors"
	"log/slog"

	"parcelio-api-server/internal/api/middleware"
	"parcelio-api-server/internal/lib/apierr"
	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/repository"

	"github.com/gin-gonic/gin"
)

// requestLog scopes log to the request being served.
func requestLog(log *slog.Logger, c *gin.Context) *slog.Logger {
	return log.With(sl.RequestID(c.GetString(middleware.RequestIDKey)))
}

// parcelError maps a repository error to the response for a parcel lookup.
// Malformed identifiers keep the generic 500 status but carry their own code.
func parcelError(err error, id, message string) *apierr.APIError {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return apierr.NewInvalidIDError(id)
	case errors.Is(err, repository.ErrNotFound):
		return apierr.NewNotFoundError("Parcel")
	default:
		return apierr.NewDatabaseError(message)
	}
}
