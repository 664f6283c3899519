package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velvetlens/studio-booking/internal/audit"
	"github.com/velvetlens/studio-booking/internal/config"
	"github.com/velvetlens/studio-booking/internal/dto"
	"github.com/velvetlens/studio-booking/internal/httperr"
	"github.com/velvetlens/studio-booking/internal/httpresp"
	"github.com/velvetlens/studio-booking/internal/middleware"
	"github.com/velvetlens/studio-booking/internal/models"
	"github.com/velvetlens/studio-booking/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db     *gorm.DB
	config *config.Config
	stripe *payments.Client
	audit  *audit.Dispatcher
}

func NewPaymentHandler(
	db *gorm.DB,
	cfg *config.Config,
	stripe *payments.Client,
	auditDisp *audit.Dispatcher,
) *PaymentHandler {
	return &PaymentHandler{
		db:     db,
		config: cfg,
		stripe: stripe,
		audit:  auditDisp,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateIntentRequest struct {
	SessionID  uint    `json:"session_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Currency   string  `json:"currency"`
	CouponCode string  `json:"coupon_code"`
}

type ValidateCouponRequest struct {
	CouponCode string  `json:"coupon_code" binding:"required"`
	Amount     float64 `json:"amount"`
}

// ======================================================
// CREATE PAYMENT INTENT
// ======================================================

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "session_id and amount are required.")
		return
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	var session models.Session
	if err := h.db.
		Where("id = ? AND user_id = ?", req.SessionID, userID).
		First(&session).Error; err != nil {
		httperr.NotFound(c, "session_not_found", "Session not found.")
		return
	}

	finalAmount := req.Amount
	var discountAmount float64
	var coupon *models.Coupon

	if req.CouponCode != "" {
		var cp models.Coupon
		if err := h.db.Where("code = ?", req.CouponCode).First(&cp).Error; err == nil &&
			payments.CouponUsable(&cp, time.Now()) {
			coupon = &cp
			discountAmount = payments.Discount(&cp, req.Amount)
			finalAmount = req.Amount - discountAmount
		}
	}

	intent, err := h.stripe.CreateIntent(payments.IntentRequest{
		Amount:         finalAmount,
		Currency:       req.Currency,
		SessionID:      session.ID,
		UserID:         userID,
		OriginalAmount: req.Amount,
		DiscountAmount: discountAmount,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_intent", "Could not start payment.")
		return
	}

	payment := models.Payment{
		SessionID:       session.ID,
		UserID:          userID,
		Amount:          finalAmount,
		Currency:        req.Currency,
		Status:          "pending",
		PaymentIntentID: intent.ID,
		DueDate:         time.Now().AddDate(0, 0, h.config.PaymentDueDays),
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment", "Could not record payment.")
		return
	}

	if coupon != nil && discountAmount > 0 {
		h.db.Create(&models.PaymentCoupon{
			PaymentID:      payment.ID,
			CouponID:       coupon.ID,
			DiscountAmount: discountAmount,
		})
		h.db.Model(coupon).Update("used_count", gorm.Expr("used_count + 1"))
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "payment_intent_created",
		Entity:   "payment",
		EntityID: &payment.ID,
		Metadata: map[string]any{
			"amount":   finalAmount,
			"discount": discountAmount,
		},
	})

	httpresp.OK(c, gin.H{
		"clientSecret":   intent.ClientSecret,
		"paymentId":      payment.ID,
		"finalAmount":    finalAmount,
		"discountAmount": discountAmount,
	})
}

// ======================================================
// VALIDATE COUPON
// ======================================================

func (h *PaymentHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Coupon code is required.")
		return
	}

	var coupon models.Coupon
	if err := h.db.Where("code = ?", req.CouponCode).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "invalid_coupon", "Coupon not valid or expired.")
			return
		}
		httperr.Internal(c, "failed_to_validate_coupon", "Could not validate coupon.")
		return
	}

	if !payments.CouponUsable(&coupon, time.Now()) {
		httperr.BadRequest(c, "coupon_exhausted", "Coupon not valid or expired.")
		return
	}

	discountAmount := payments.Discount(&coupon, req.Amount)

	httpresp.OK(c, gin.H{
		"valid": true,
		"coupon": gin.H{
			"code":        coupon.Code,
			"type":        coupon.Type,
			"value":       coupon.Value,
			"description": coupon.Description,
		},
		"discountAmount": discountAmount,
		"finalAmount":    req.Amount - discountAmount,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var rows []dto.PaymentListDTO
	err := h.db.
		Model(&models.Payment{}).
		Select(`payments.id, payments.amount, payments.currency, payments.status,
			payments.payment_intent_id, payments.due_date, payments.paid_at,
			payments.created_at,
			sessions.title AS session_title, sessions.start_time AS session_date,
			coupons.code AS coupon_used,
			invoices.invoice_number, invoices.pdf_url`).
		Joins("LEFT JOIN sessions ON sessions.id = payments.session_id").
		Joins("LEFT JOIN payment_coupons ON payment_coupons.payment_id = payments.id").
		Joins("LEFT JOIN coupons ON coupons.id = payment_coupons.coupon_id").
		Joins("LEFT JOIN invoices ON invoices.payment_id = payments.id").
		Where("payments.user_id = ?", userID).
		Order("payments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	httpresp.List(c, rows)
}
