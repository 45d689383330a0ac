package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tngolf/booking-api/internal/cache"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/httpresp"
	"github.com/tngolf/booking-api/internal/middleware"
	ucBooking "github.com/tngolf/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	initiateUC *ucBooking.InitiatePayment
	eventsUC   *ucBooking.PaymentEvents
	cache      *cache.Availability
}

func NewPaymentHandler(
	initiateUC *ucBooking.InitiatePayment,
	eventsUC *ucBooking.PaymentEvents,
	availabilityCache *cache.Availability,
) *PaymentHandler {
	return &PaymentHandler{
		initiateUC: initiateUC,
		eventsUC:   eventsUC,
		cache:      availabilityCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCheckoutRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

type CheckPaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Boknings-ID krävs.")
		return
	}

	result, err := h.initiateUC.Execute(c.Request.Context(), ucBooking.InitiatePaymentInput{
		UserID:    userID,
		BookingID: req.BookingID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"session_id":   result.SessionID,
		"redirect_url": result.RedirectURL,
	})
}

// ======================================================
// CHECK (POLLING FALLBACK)
// ======================================================

func (h *PaymentHandler) CheckPayment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CheckPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Boknings-ID och sessions-ID krävs.")
		return
	}

	result, err := h.eventsUC.CheckPayment(c.Request.Context(), ucBooking.CheckPaymentInput{
		UserID:    userID,
		BookingID: req.BookingID,
		SessionID: req.SessionID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.OK(c, gin.H{
		"payment_status": result.PaymentStatus,
		"booking_status": result.BookingStatus,
	})
}

// ======================================================
// WEBHOOK
// ======================================================

// Webhook receives processor callbacks. The raw body is required for
// signature verification so this route must not use body binding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Kunde inte läsa begäran.")
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	if err := h.eventsUC.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.OK(c, gin.H{"received": true})
}
