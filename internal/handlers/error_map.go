package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tngolf/booking-api/internal/httperr"
)

// User-facing messages per business code. Conflicts and validation
// failures carry distinct codes so the UI can re-fetch availability
// on the former and re-prompt input on the latter.
var businessMessages = map[string]string{
	"invalid_request":                "Tjänst, datum och tid krävs.",
	"invalid_service":                "Ogiltig tjänsttyp.",
	"invalid_date":                   "Ogiltigt datum.",
	"invalid_time":                   "Ogiltig tid.",
	"sunday_not_bookable":            "Söndagar är inte bokningsbara.",
	"date_in_past":                   "Datumet har redan passerat.",
	"invalid_state":                  "Bokningen är i fel tillstånd för den här åtgärden.",
	"already_paid":                   "Bokningen är redan betald.",
	"already_cancelled":              "Bokningen är redan avbokad.",
	"cancellation_already_requested": "Avbokningsförfrågan är redan skickad och väntar på svar.",
	"cancellation_window_passed":     "Avbokning måste begäras senast 48 timmar innan.",
	"slot_taken":                     "Denna tid är redan bokad.",
	"slot_blocked":                   "Denna tid är blockerad.",
	"already_blocked":                "Denna tid är redan blockerad.",
	"booking_not_found":              "Bokning hittades inte.",
	"blocked_slot_not_found":         "Blockering hittades inte.",
	"user_not_found":                 "Användare hittades inte.",
	"forbidden":                      "Ingen behörighet.",
	"not_owner":                      "Du har inte behörighet till denna bokning.",
	"invalid_signature":              "Ogiltig signatur.",
}

func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Något gick fel.")
		return
	}

	message := businessMessages[code]
	if message == "" {
		message = code
	}

	switch code {
	case "slot_taken", "slot_blocked", "already_blocked":
		httperr.Conflict(c, code, message)
	case "booking_not_found", "blocked_slot_not_found", "user_not_found":
		httperr.NotFound(c, code, message)
	case "forbidden", "not_owner":
		httperr.Forbidden(c, code, message)
	case "invalid_signature":
		httperr.Unauthorized(c, code, message)
	default:
		httperr.BadRequest(c, code, message)
	}
}
