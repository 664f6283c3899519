package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/config"
	"github.com/velvetlens/studio-booking/internal/dto"
	"github.com/velvetlens/studio-booking/internal/httperr"
	"github.com/velvetlens/studio-booking/internal/httpresp"
	"github.com/velvetlens/studio-booking/internal/middleware"
	"github.com/velvetlens/studio-booking/internal/models"
	ucBooking "github.com/velvetlens/studio-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	db     *gorm.DB
	config *config.Config

	createUC *ucBooking.CreateSession
	cancelUC *ucBooking.CancelSession
	customUC *ucBooking.CreateCustomRequest
}

func NewSessionHandler(
	db *gorm.DB,
	cfg *config.Config,
	createUC *ucBooking.CreateSession,
	cancelUC *ucBooking.CancelSession,
	customUC *ucBooking.CreateCustomRequest,
) *SessionHandler {
	return &SessionHandler{
		db:       db,
		config:   cfg,
		createUC: createUC,
		cancelUC: cancelUC,
		customUC: customUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSessionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	DurationMin int    `json:"duration_minutes" binding:"required"`
	Location    string `json:"location"`
	PackageID   *uint  `json:"package_id"`
}

type CustomPackageRequest struct {
	Kind        string `json:"type" binding:"required"`
	DurationMin int    `json:"duration_minutes" binding:"required"`
	PhotoCount  int    `json:"photo_count" binding:"required"`
	Locations   int    `json:"location_count" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SessionHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "missing required fields")
		return
	}

	start, err := parseDateTime(h.config.StudioTimezone, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	session, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateSessionInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Start:       start,
		DurationMin: req.DurationMin,
		Location:    req.Location,
		PackageID:   req.PackageID,
	})
	if err != nil {
		httperr.FromBooking(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Session booked.",
		"session": session,
	})
}

// ======================================================
// LIST (with payment info)
// ======================================================

func (h *SessionHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var rows []dto.SessionListDTO
	err := h.db.
		Model(&models.Session{}).
		Select(`sessions.id, sessions.title, sessions.description,
			sessions.start_time, sessions.duration_min, sessions.location,
			sessions.status,
			packages.name AS package_name, packages.price AS package_price,
			payments.status = 'completed' AS paid,
			payments.status AS payment_status,
			payments.amount AS payment_amount`).
		Joins("LEFT JOIN packages ON packages.id = sessions.package_id").
		Joins("LEFT JOIN payments ON payments.session_id = sessions.id AND payments.status IN ('completed', 'pending')").
		Where("sessions.user_id = ?", userID).
		Order("sessions.start_time DESC").
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_sessions", "Could not list sessions.")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// CALENDAR EVENTS
// ======================================================

func (h *SessionHandler) ListCalendarEvents(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var events []models.CalendarEvent
	err := h.db.
		Where("session_id IN (?)",
			h.db.Model(&models.Session{}).Select("id").Where("user_id = ?", userID),
		).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_events", "Could not list calendar events.")
		return
	}

	httpresp.List(c, events)
}

// ======================================================
// CANCEL
// ======================================================

func (h *SessionHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_session_id", "Invalid session id.")
		return
	}

	session, err := h.cancelUC.Execute(c.Request.Context(), uint(id), userID)
	if err != nil {
		httperr.FromBooking(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Session cancelled.",
		"session": session,
	})
}

// ======================================================
// CUSTOM PACKAGE REQUEST
// ======================================================

func (h *SessionHandler) CreateCustomRequest(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CustomPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "missing required fields")
		return
	}

	session, err := h.customUC.Execute(c.Request.Context(), ucBooking.CustomRequestInput{
		OwnerID:     userID,
		Kind:        req.Kind,
		DurationMin: req.DurationMin,
		PhotoCount:  req.PhotoCount,
		Locations:   req.Locations,
	})
	if err != nil {
		httperr.FromBooking(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Custom request saved.",
		"session": session,
	})
}
