// server/internal/api/handlers/parcel_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"parcelio-api-server/internal/lib/apierr"
	"parcelio-api-server/internal/lib/sl"
	"parcelio-api-server/internal/lib/validate"
	"parcelio-api-server/internal/models"
	"parcelio-api-server/internal/s3"
	"parcelio-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ParcelHandler struct {
	Parcels ParcelRepository
	Hub     Notifier
	Photos  PhotoUploader // nil when photo storage is not configured
	Log     *slog.Logger
}

// GetParcels lists parcels newest first, optionally only those created by ?email=.
func (h *ParcelHandler) GetParcels(c *gin.Context) {
	email := c.Query("email")

	parcels, err := h.Parcels.List(c.Request.Context(), email)
	if err != nil {
		requestLog(h.Log, c).Error("failed to list parcels", sl.Err(err), slog.String("email", email))
		apierr.Respond(c, apierr.NewDatabaseError("Failed to fetch parcels"))
		return
	}

	// Always an array, never null.
	if parcels == nil {
		parcels = []models.Document{}
	}

	c.JSON(http.StatusOK, parcels)
}

// GetParcelByID returns one parcel.
func (h *ParcelHandler) GetParcelByID(c *gin.Context) {
	id := c.Param("id")

	parcel, err := h.Parcels.Get(c.Request.Context(), id)
	if err != nil {
		apiErr := parcelError(err, id, "Failed to fetch parcel")
		if apiErr.HTTPStatus >= http.StatusInternalServerError {
			requestLog(h.Log, c).Error("failed to get parcel", sl.Err(err), slog.String("id", id))
		}
		apierr.Respond(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, parcel)
}

// CreateParcel stores the request body as a new parcel.
func (h *ParcelHandler) CreateParcel(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		apierr.Respond(c, apierr.NewValidationError(validate.Details(err)))
		return
	}
	if body == nil {
		apierr.Respond(c, apierr.NewValidationError(map[string]string{"body": "must be a JSON object"}))
		return
	}
	if owner, ok := body[models.ParcelFieldCreatedBy]; ok {
		s, isString := owner.(string)
		if !isString || validate.Email(s) != nil {
			apierr.Respond(c, apierr.NewValidationError(map[string]string{
				models.ParcelFieldCreatedBy: "must be a valid email address",
			}))
			return
		}
	}

	doc := models.NewParcel(body, time.Now().UTC())
	result, err := h.Parcels.Create(c.Request.Context(), doc)
	if err != nil {
		requestLog(h.Log, c).Error("error inserting parcel", sl.Err(err))
		apierr.Respond(c, apierr.NewDatabaseError("Failed to create parcel."))
		return
	}

	doc[models.ParcelFieldID] = result.InsertedID
	h.Hub.Publish(models.CreatedBy(doc), socket.EventParcelCreated, doc)

	c.JSON(http.StatusCreated, result)
}

// DeleteParcel removes a parcel. A miss is reported through deletedCount, not a 404.
func (h *ParcelHandler) DeleteParcel(c *gin.Context) {
	id := c.Param("id")

	result, deleted, err := h.Parcels.Delete(c.Request.Context(), id)
	if err != nil {
		requestLog(h.Log, c).Error("failed to delete parcel", sl.Err(err), slog.String("id", id))
		apierr.Respond(c, parcelError(err, id, "Failed to delete parcel"))
		return
	}

	if deleted != nil {
		h.Hub.Publish(models.CreatedBy(deleted), socket.EventParcelDeleted, gin.H{"_id": id})
	}

	c.JSON(http.StatusOK, result)
}

// UploadPhoto stores the multipart "photo" file and attaches it to the parcel.
func (h *ParcelHandler) UploadPhoto(c *gin.Context) {
	if h.Photos == nil {
		apierr.Respond(c, apierr.NewStorageUnavailableError())
		return
	}

	id := c.Param("id")
	log := requestLog(h.Log, c).With(slog.String("id", id))

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		apierr.Respond(c, apierr.NewValidationError(map[string]string{"photo": "is required"}))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		apierr.Respond(c, apierr.NewValidationError(map[string]string{"photo": "must be an image"}))
		return
	}

	exists, err := h.Parcels.Exists(c.Request.Context(), id)
	if err != nil {
		log.Error("failed to look up parcel for photo", sl.Err(err))
		apierr.Respond(c, parcelError(err, id, "Failed to fetch parcel"))
		return
	}
	if !exists {
		apierr.Respond(c, apierr.NewNotFoundError("Parcel"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierr.Respond(c, apierr.NewValidationError(map[string]string{"photo": "could not be read"}))
		return
	}
	defer file.Close()

	key := s3.ParcelPhotoKey(id, fileHeader.Filename)
	url, err := h.Photos.UploadFile(c.Request.Context(), file, key, contentType)
	if err != nil {
		log.Error("failed to upload parcel photo", sl.Err(err), slog.String("key", key))
		apierr.Respond(c, apierr.NewInternalError("Failed to upload photo"))
		return
	}

	photo := models.MediaPointer{
		ID:       uuid.NewString(),
		URL:      url,
		FileName: fileHeader.Filename,
		FileType: contentType,
	}
	parcel, err := h.Parcels.AddPhoto(c.Request.Context(), id, photo)
	if err != nil {
		log.Error("failed to attach photo to parcel", sl.Err(err))
		apierr.Respond(c, parcelError(err, id, "Failed to attach photo"))
		return
	}

	h.Hub.Publish(models.CreatedBy(parcel), socket.EventParcelPhotoAdded, gin.H{"_id": id, "photo": photo})

	c.JSON(http.StatusCreated, photo)
}
