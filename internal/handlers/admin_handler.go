package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tngolf/booking-api/internal/audit"
	"github.com/tngolf/booking-api/internal/authz"
	"github.com/tngolf/booking-api/internal/cache"
	"github.com/tngolf/booking-api/internal/dto"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/httpresp"
	"github.com/tngolf/booking-api/internal/middleware"
	ucBooking "github.com/tngolf/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// AdminHandler is the coach surface. Authorization is enforced inside
// each use case, not here; the handler only relays the actor's email.
type AdminHandler struct {
	listAllUC     *ucBooking.ListAllBookings
	confirmUC     *ucBooking.ConfirmBooking
	cancelUC      *ucBooking.CancelBooking
	deleteUC      *ucBooking.DeleteBooking
	blockUC       *ucBooking.BlockSlot
	unblockUC     *ucBooking.UnblockSlot
	listBlockedUC *ucBooking.ListBlockedSlots
	auditLog      *audit.Logger
	policy        authz.Policy
	cache         *cache.Availability
}

func NewAdminHandler(
	listAllUC *ucBooking.ListAllBookings,
	confirmUC *ucBooking.ConfirmBooking,
	cancelUC *ucBooking.CancelBooking,
	deleteUC *ucBooking.DeleteBooking,
	blockUC *ucBooking.BlockSlot,
	unblockUC *ucBooking.UnblockSlot,
	listBlockedUC *ucBooking.ListBlockedSlots,
	auditLog *audit.Logger,
	policy authz.Policy,
	availabilityCache *cache.Availability,
) *AdminHandler {
	return &AdminHandler{
		listAllUC:     listAllUC,
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		deleteUC:      deleteUC,
		blockUC:       blockUC,
		unblockUC:     unblockUC,
		listBlockedUC: listBlockedUC,
		auditLog:      auditLog,
		policy:        policy,
		cache:         availabilityCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BlockSlotRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)
	status := c.Query("status")

	bookings, err := h.listAllUC.Execute(c.Request.Context(), actorEmail, status)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.FromBooking(b))
	}

	httpresp.List(c, out)
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)
	bookingID := c.Param("id")

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status krävs.")
		return
	}

	switch req.Status {
	case "confirmed":
		b, err := h.confirmUC.Execute(c.Request.Context(), actorEmail, bookingID)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		h.cache.Invalidate(c.Request.Context())
		httpresp.OK(c, b)

	case "cancelled":
		b, err := h.cancelUC.Execute(c.Request.Context(), actorEmail, bookingID)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		h.cache.Invalidate(c.Request.Context())
		httpresp.OK(c, b)

	default:
		httperr.BadRequest(c, "invalid_status", "Status måste vara confirmed eller cancelled.")
	}
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)
	bookingID := c.Param("id")

	if err := h.deleteUC.Execute(c.Request.Context(), actorEmail, bookingID); err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"success": true})
}

// ======================================================
// BLOCKED SLOTS
// ======================================================

func (h *AdminHandler) ListBlockedSlots(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)

	slots, err := h.listBlockedUC.Execute(c.Request.Context(), actorEmail)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *AdminHandler) BlockSlot(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)

	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datum och tid krävs.")
		return
	}

	slot, err := h.blockUC.Execute(c.Request.Context(), actorEmail, ucBooking.BlockSlotInput{
		Date:   req.Date,
		Time:   req.Time,
		Reason: req.Reason,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.Created(c, slot)
}

func (h *AdminHandler) UnblockSlot(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)
	id := c.Param("id")

	if err := h.unblockUC.Execute(c.Request.Context(), actorEmail, id); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.OK(c, gin.H{"success": true})
}

// ======================================================
// AUDIT LOG
// ======================================================

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	actorEmail := c.MustGet(middleware.ContextUserEmail).(string)

	if !h.policy.IsCoach(actorEmail) {
		httperr.Forbidden(c, "forbidden", "Endast tränaren har åtkomst.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.auditLog.Recent(limit)
	if err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Kunde inte hämta aktivitetsloggen.")
		return
	}

	httpresp.List(c, entries)
}
