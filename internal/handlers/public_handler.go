package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velvetlens/studio-booking/internal/config"
	"github.com/velvetlens/studio-booking/internal/httperr"
	"github.com/velvetlens/studio-booking/internal/httpresp"
	ucBooking "github.com/velvetlens/studio-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	config  *config.Config
	slotsUC *ucBooking.ListOccupiedSlots
}

func NewPublicHandler(cfg *config.Config, slotsUC *ucBooking.ListOccupiedSlots) *PublicHandler {
	return &PublicHandler{
		config:  cfg,
		slotsUC: slotsUC,
	}
}

////////////////////////////////////////////////////////
// OCCUPIED SLOTS
////////////////////////////////////////////////////////

// OccupiedSlots is public: the booking calendar is shown before login.
// Only title, time and duration are exposed.
func (h *PublicHandler) OccupiedSlots(c *gin.Context) {
	var from time.Time
	if q := c.Query("from"); q != "" {
		parsed, err := parseDate(h.config.StudioTimezone, q)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		from = parsed
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), from)
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Could not load occupied slots.")
		return
	}

	httpresp.OK(c, slots)
}

////////////////////////////////////////////////////////
// STRIPE CONFIG
////////////////////////////////////////////////////////

func (h *PublicHandler) StripeConfig(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"publishableKey": h.config.StripePublishableKey,
	})
}
