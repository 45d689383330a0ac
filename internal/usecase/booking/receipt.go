package booking

import (
	"context"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

type ReceiptResult struct {
	Booking *models.Booking
	Receipt *domain.Receipt // nil when the processor has none
}

// GetReceipt shows the owner their booking with payment receipt data.
// The processor lookup is best-effort; the booking is returned either
// way.
type GetReceipt struct {
	repo   domain.Repository
	bridge domain.PaymentBridge
}

func NewGetReceipt(repo domain.Repository, bridge domain.PaymentBridge) *GetReceipt {
	return &GetReceipt{repo: repo, bridge: bridge}
}

func (uc *GetReceipt) Execute(
	ctx context.Context,
	userID string,
	bookingID string,
) (*ReceiptResult, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, httperr.ErrBusiness("not_owner")
	}

	out := &ReceiptResult{Booking: b}

	if b.PaymentIntentID != "" {
		if receipt, err := uc.bridge.RetrieveReceipt(ctx, b.PaymentIntentID); err == nil {
			out.Receipt = receipt
		}
	}

	return out, nil
}
