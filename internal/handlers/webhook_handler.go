package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/httperr"
	"github.com/velvetlens/studio-booking/internal/models"
	"github.com/velvetlens/studio-booking/internal/payments"
	ucBooking "github.com/velvetlens/studio-booking/internal/usecase/booking"
)

type WebhookHandler struct {
	db        *gorm.DB
	stripe    *payments.Client
	confirmUC *ucBooking.ConfirmSession
	logger    *zap.Logger
}

func NewWebhookHandler(
	db *gorm.DB,
	stripeClient *payments.Client,
	confirmUC *ucBooking.ConfirmSession,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		db:        db,
		stripe:    stripeClient,
		confirmUC: confirmUC,
		logger:    logger,
	}
}

// HandleStripe processes Stripe deliveries. A succeeded intent completes the
// payment, cuts the invoice and confirms the session; a failed one just
// marks the payment. Unknown event types are acknowledged so Stripe stops
// retrying them.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Could not read webhook body.")
		return
	}

	event, err := h.stripe.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		httperr.BadRequest(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			httperr.BadRequest(c, "invalid_event", "Could not parse event.")
			return
		}
		if err := h.paymentSucceeded(c, &intent); err != nil {
			h.logger.Error("failed to apply successful payment",
				zap.String("payment_intent", intent.ID), zap.Error(err))
			httperr.Internal(c, "webhook_failed", "Could not apply payment.")
			return
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			httperr.BadRequest(c, "invalid_event", "Could not parse event.")
			return
		}
		h.db.Model(&models.Payment{}).
			Where("payment_intent_id = ?", intent.ID).
			Update("status", "failed")
		h.logger.Info("payment failed", zap.String("payment_intent", intent.ID))

	default:
		h.logger.Debug("unhandled stripe event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) paymentSucceeded(c *gin.Context, intent *stripe.PaymentIntent) error {
	now := time.Now()

	var payment models.Payment
	if err := h.db.Where("payment_intent_id = ?", intent.ID).First(&payment).Error; err != nil {
		return err
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).
			Updates(map[string]any{"status": "completed", "paid_at": now}).Error; err != nil {
			return err
		}

		// Webhook deliveries repeat; only the first one cuts the invoice.
		var existing int64
		tx.Model(&models.Invoice{}).Where("payment_id = ?", payment.ID).Count(&existing)
		if existing == 0 {
			invoice := models.Invoice{
				PaymentID:     payment.ID,
				InvoiceNumber: "INV-" + uuid.NewString()[:8],
			}
			if err := tx.Create(&invoice).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	sessionID := payment.SessionID
	if raw, ok := intent.Metadata["session_id"]; ok {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			sessionID = uint(id)
		}
	}

	if _, err := h.confirmUC.Execute(c.Request.Context(), sessionID); err != nil {
		return err
	}

	h.logger.Info("payment confirmed",
		zap.String("payment_intent", intent.ID),
		zap.Uint("session_id", sessionID))
	return nil
}
