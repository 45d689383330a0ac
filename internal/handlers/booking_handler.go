package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tngolf/booking-api/internal/cache"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/httpresp"
	"github.com/tngolf/booking-api/internal/middleware"
	"github.com/tngolf/booking-api/internal/timezone"
	ucBooking "github.com/tngolf/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
	listMineUC     *ucBooking.ListUserBookings
	cancelReqUC    *ucBooking.RequestCancellation
	receiptUC      *ucBooking.GetReceipt
	cache          *cache.Availability
}

func NewBookingHandler(
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
	listMineUC *ucBooking.ListUserBookings,
	cancelReqUC *ucBooking.RequestCancellation,
	receiptUC *ucBooking.GetReceipt,
	availabilityCache *cache.Availability,
) *BookingHandler {
	return &BookingHandler{
		availabilityUC: availabilityUC,
		createUC:       createUC,
		listMineUC:     listMineUC,
		cancelReqUC:    cancelReqUC,
		receiptUC:      receiptUC,
		cache:          availabilityCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceType   string `json:"service_type" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	// serviceType is accepted for forward-compatibility but does not
	// filter: occupancy is service-agnostic.
	_ = c.Query("service_type")

	ctx := c.Request.Context()

	if payload, ok := h.cache.Get(ctx); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	slots, err := h.availabilityUC.Execute(ctx)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Kunde inte hämta tillgängliga tider.")
		return
	}
	if slots == nil {
		slots = []domain.DaySlots{}
	}

	if payload, err := json.Marshal(slots); err == nil {
		h.cache.Set(ctx, payload)
	}

	httpresp.OK(c, slots)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Tjänst, datum och tid krävs.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:        userID,
		ServiceType:   req.ServiceType,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.Created(c, gin.H{
		"booking":          result.Booking,
		"requires_payment": result.RequiresPayment,
	})
}

// ======================================================
// LIST (OWN)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	bookings, err := h.listMineUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Kunde inte hämta bokningar.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCELLATION REQUEST
// ======================================================

func (h *BookingHandler) RequestCancellation(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	bookingID := c.Param("id")

	b, err := h.cancelReqUC.Execute(c.Request.Context(), userID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"success": true,
		"message": "Avbokningsförfrågan har skickats.",
		"booking": b,
	})
}

// ======================================================
// RECEIPT
// ======================================================

func (h *BookingHandler) Receipt(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)
	bookingID := c.Param("id")

	result, err := h.receiptUC.Execute(c.Request.Context(), userID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	resp := gin.H{
		"booking":      result.Booking,
		"receipt_data": nil,
	}
	if result.Receipt != nil {
		resp["receipt_data"] = gin.H{
			"receipt_url":    result.Receipt.ReceiptURL,
			"payment_method": result.Receipt.PaymentMethod,
			"paid_at":        result.Receipt.PaidAt.In(timezone.Location()),
		}
	}

	httpresp.OK(c, resp)
}
