package handlers

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/httperr"
	"github.com/velvetlens/studio-booking/internal/httpresp"
	"github.com/velvetlens/studio-booking/internal/images"
	"github.com/velvetlens/studio-booking/internal/middleware"
	"github.com/velvetlens/studio-booking/internal/models"
	"github.com/velvetlens/studio-booking/internal/storage"
)

const maxPhotoSize = 20 << 20 // 20 MiB

// ======================================================
// HANDLER
// ======================================================

type GalleryHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	logger   *zap.Logger
}

func NewGalleryHandler(db *gorm.DB, uploader *storage.Uploader, logger *zap.Logger) *GalleryHandler {
	return &GalleryHandler{
		db:       db,
		uploader: uploader,
		logger:   logger,
	}
}

type galleryPhotoDTO struct {
	ID        uint   `json:"id"`
	SessionID *uint  `json:"session_id,omitempty"`
	URL       string `json:"url"`
	ThumbURL  string `json:"thumb_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ======================================================
// UPLOAD
// ======================================================

func (h *GalleryHandler) Upload(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	if file.Size > maxPhotoSize {
		httperr.BadRequest(c, "photo_too_large", "Photo exceeds the size limit.")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		httperr.BadRequest(c, "unsupported_type", "Only JPEG and PNG photos are accepted.")
		return
	}

	var sessionID *uint
	if raw := c.PostForm("session_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_session_id", "Invalid session id.")
			return
		}
		// Photos only attach to the caller's own sessions.
		var count int64
		h.db.Model(&models.Session{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "session_not_found", "Session not found.")
			return
		}
		v := uint(id)
		sessionID = &v
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read the photo.")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read the photo.")
		return
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	base := fmt.Sprintf("gallery/%d/%s", userID, uuid.NewString())
	objectKey := base + ext
	thumbKey := base + "_thumb.webp"

	ctx := c.Request.Context()

	if err := h.uploader.Put(ctx, objectKey, contentType, data); err != nil {
		h.logger.Error("gallery upload failed", zap.Error(err))
		httperr.Internal(c, "failed_to_store_photo", "Could not store the photo.")
		return
	}

	// A broken thumbnail should not lose the original.
	if thumb, err := images.Thumbnail(data); err != nil {
		h.logger.Warn("thumbnail generation failed", zap.Error(err))
		thumbKey = ""
	} else if err := h.uploader.Put(ctx, thumbKey, "image/webp", thumb); err != nil {
		h.logger.Warn("thumbnail upload failed", zap.Error(err))
		thumbKey = ""
	}

	photo := models.GalleryPhoto{
		UserID:      userID,
		SessionID:   sessionID,
		ObjectKey:   objectKey,
		ThumbKey:    thumbKey,
		ContentType: contentType,
		Size:        file.Size,
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "Could not save the photo.")
		return
	}

	httpresp.Created(c, h.toDTO(&photo))
}

// ======================================================
// LIST
// ======================================================

func (h *GalleryHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var photos []models.GalleryPhoto
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		httperr.Internal(c, "failed_to_list_photos", "Could not list photos.")
		return
	}

	out := make([]galleryPhotoDTO, 0, len(photos))
	for i := range photos {
		out = append(out, h.toDTO(&photos[i]))
	}

	httpresp.List(c, out)
}

func (h *GalleryHandler) toDTO(p *models.GalleryPhoto) galleryPhotoDTO {
	d := galleryPhotoDTO{
		ID:        p.ID,
		SessionID: p.SessionID,
		URL:       h.uploader.URL(p.ObjectKey),
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.ThumbKey != "" {
		d.ThumbURL = h.uploader.URL(p.ThumbKey)
	}
	return d
}
