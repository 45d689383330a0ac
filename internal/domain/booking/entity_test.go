package booking

import (
	"testing"
	"time"

	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
	"github.com/tngolf/booking-api/internal/timezone"
)

func businessCode(t *testing.T, err error) string {
	t.Helper()
	code, ok := httperr.BusinessCode(err)
	if !ok {
		t.Fatalf("expected business error, got %v", err)
	}
	return code
}

func TestMarkPaid(t *testing.T) {
	b := &models.Booking{Status: "pending", PaymentStatus: "pending"}

	if err := MarkPaid(b, "pi_123"); err != nil {
		t.Fatalf("MarkPaid = %v, want nil", err)
	}
	if b.PaymentStatus != "paid" {
		t.Errorf("PaymentStatus = %q, want paid", b.PaymentStatus)
	}
	if b.PaymentIntentID != "pi_123" {
		t.Errorf("PaymentIntentID = %q, want pi_123", b.PaymentIntentID)
	}
	if b.Status != "pending" {
		t.Errorf("Status = %q, payment must not confirm the booking", b.Status)
	}

	err := MarkPaid(b, "pi_456")
	if code := businessCode(t, err); code != "already_paid" {
		t.Errorf("second MarkPaid code = %q, want already_paid", code)
	}
	if b.PaymentIntentID != "pi_123" {
		t.Errorf("PaymentIntentID overwritten to %q", b.PaymentIntentID)
	}
}

func TestConfirmAndCancel(t *testing.T) {
	b := &models.Booking{Status: "pending"}

	if err := Confirm(b); err != nil {
		t.Fatalf("Confirm = %v, want nil", err)
	}
	if b.Status != "confirmed" {
		t.Errorf("Status = %q, want confirmed", b.Status)
	}

	if err := Confirm(b); err == nil {
		t.Error("Confirm on confirmed booking = nil, want error")
	}

	if err := Cancel(b); err != nil {
		t.Fatalf("Cancel = %v, want nil", err)
	}
	if b.Status != "cancelled" {
		t.Errorf("Status = %q, want cancelled", b.Status)
	}

	err := Cancel(b)
	if code := businessCode(t, err); code != "invalid_state" {
		t.Errorf("Cancel on cancelled code = %q, want invalid_state", code)
	}
}

func TestRequestCancellation(t *testing.T) {
	loc := timezone.Location()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, loc)

	t.Run("inside notice window", func(t *testing.T) {
		b := &models.Booking{Status: "pending", Date: date, Time: "14:00"}
		now := time.Date(2025, 6, 1, 9, 0, 0, 0, loc)

		if err := RequestCancellation(b, now); err != nil {
			t.Fatalf("RequestCancellation = %v, want nil", err)
		}
		if b.CancellationRequest != CancellationRequested {
			t.Errorf("CancellationRequest = %q, want %q", b.CancellationRequest, CancellationRequested)
		}
		if b.CancellationRequestedAt == nil || !b.CancellationRequestedAt.Equal(now) {
			t.Errorf("CancellationRequestedAt = %v, want %v", b.CancellationRequestedAt, now)
		}
		if b.Status != "pending" {
			t.Errorf("Status = %q, the request must not cancel the booking", b.Status)
		}
	})

	t.Run("window passed", func(t *testing.T) {
		b := &models.Booking{Status: "confirmed", Date: date, Time: "14:00"}
		// 47 hours before the session.
		now := time.Date(2025, 6, 8, 15, 0, 0, 0, loc)

		err := RequestCancellation(b, now)
		if code := businessCode(t, err); code != "cancellation_window_passed" {
			t.Errorf("code = %q, want cancellation_window_passed", code)
		}
	})

	t.Run("exactly at the boundary", func(t *testing.T) {
		b := &models.Booking{Status: "pending", Date: date, Time: "14:00"}
		now := time.Date(2025, 6, 8, 14, 0, 0, 0, loc)

		if err := RequestCancellation(b, now); err == nil {
			t.Error("exactly 48h before should be rejected")
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		b := &models.Booking{Status: "cancelled", Date: date, Time: "14:00"}
		now := time.Date(2025, 6, 1, 9, 0, 0, 0, loc)

		err := RequestCancellation(b, now)
		if code := businessCode(t, err); code != "already_cancelled" {
			t.Errorf("code = %q, want already_cancelled", code)
		}
	})

	t.Run("duplicate request", func(t *testing.T) {
		b := &models.Booking{Status: "pending", Date: date, Time: "14:00"}
		now := time.Date(2025, 6, 1, 9, 0, 0, 0, loc)

		if err := RequestCancellation(b, now); err != nil {
			t.Fatalf("first request = %v", err)
		}
		err := RequestCancellation(b, now.Add(time.Hour))
		if code := businessCode(t, err); code != "cancellation_already_requested" {
			t.Errorf("code = %q, want cancellation_already_requested", code)
		}
	})
}
