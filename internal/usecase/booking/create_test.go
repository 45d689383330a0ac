package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/models"
	"github.com/tngolf/booking-api/internal/timezone"
)

// A Tuesday at noon; the horizon and past-date checks key off this.
var testNow = time.Date(2025, 6, 3, 12, 0, 0, 0, timezone.Location())

func newCreateUC(repo *fakeRepo) *CreateBooking {
	uc := NewCreateBooking(repo, testAudit())
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestCreateBookingOnlinePayment(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:        "u1",
		ServiceType:   "golftraning",
		Date:          "2025-06-10",
		Time:          "14:00",
		PaymentMethod: "online",
	})
	if err != nil {
		t.Fatalf("Execute = %v, want nil", err)
	}

	if !result.RequiresPayment {
		t.Error("RequiresPayment = false, want true for online payment")
	}
	b := result.Booking
	if b.Status != "pending" {
		t.Errorf("Status = %q, want pending", b.Status)
	}
	if b.PaymentStatus != "pending" {
		t.Errorf("PaymentStatus = %q, want pending", b.PaymentStatus)
	}
	if b.Amount != 1079 {
		t.Errorf("Amount = %d, want 1079", b.Amount)
	}
}

func TestCreateBookingOnsiteSkipsPayment(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:        "u1",
		ServiceType:   "mental-traning",
		Date:          "2025-06-10",
		Time:          "10:00",
		PaymentMethod: "onsite",
	})
	if err != nil {
		t.Fatalf("Execute = %v, want nil", err)
	}

	if result.RequiresPayment {
		t.Error("RequiresPayment = true, want false for onsite")
	}
	if result.Booking.PaymentStatus != "" {
		t.Errorf("PaymentStatus = %q, want empty", result.Booking.PaymentStatus)
	}
	if result.Booking.Amount != 0 {
		t.Errorf("Amount = %d, want 0", result.Booking.Amount)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateBookingInput
		wantCode string
	}{
		{
			name:     "unknown service",
			input:    CreateBookingInput{UserID: "u1", ServiceType: "padel", Date: "2025-06-10", Time: "14:00"},
			wantCode: "invalid_service",
		},
		{
			name:     "missing time",
			input:    CreateBookingInput{UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10"},
			wantCode: "invalid_request",
		},
		{
			name:     "off-grid time",
			input:    CreateBookingInput{UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "14:15"},
			wantCode: "invalid_time",
		},
		{
			name:     "malformed date",
			input:    CreateBookingInput{UserID: "u1", ServiceType: "golftraning", Date: "10/06/2025", Time: "14:00"},
			wantCode: "invalid_date",
		},
		{
			name:     "sunday",
			input:    CreateBookingInput{UserID: "u1", ServiceType: "golftraning", Date: "2025-06-08", Time: "14:00"},
			wantCode: "sunday_not_bookable",
		},
		{
			name:     "past date",
			input:    CreateBookingInput{UserID: "u1", ServiceType: "golftraning", Date: "2025-06-02", Time: "14:00"},
			wantCode: "date_in_past",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newCreateUC(newFakeRepo())
			_, err := uc.Execute(context.Background(), tt.input)
			if got := errCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, timezone.Location())

	t.Run("confirmed booking occupies the slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBooking(&models.Booking{UserID: "u2", Date: date, Time: "14:00", Status: "confirmed"})

		uc := newCreateUC(repo)
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "14:00",
		})
		if got := errCode(err); got != "slot_taken" {
			t.Errorf("code = %q, want slot_taken", got)
		}
	})

	t.Run("paid booking occupies the slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBooking(&models.Booking{UserID: "u2", Date: date, Time: "14:00", Status: "pending", PaymentStatus: "paid"})

		uc := newCreateUC(repo)
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "14:00",
		})
		if got := errCode(err); got != "slot_taken" {
			t.Errorf("code = %q, want slot_taken", got)
		}
	})

	t.Run("pending unpaid booking does not block", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBooking(&models.Booking{UserID: "u2", Date: date, Time: "14:00", Status: "pending", PaymentStatus: "pending"})

		uc := newCreateUC(repo)
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "14:00", PaymentMethod: "online",
		})
		if err != nil {
			t.Fatalf("Execute = %v, several pending attempts may coexist", err)
		}
	})

	t.Run("blocked slot rejects booking", func(t *testing.T) {
		repo := newFakeRepo()
		repo.blocked["s1"] = &models.BlockedSlot{ID: "s1", Date: date, Time: "14:00"}

		uc := newCreateUC(repo)
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "14:00",
		})
		if got := errCode(err); got != "slot_blocked" {
			t.Errorf("code = %q, want slot_blocked", got)
		}
	})
}

func TestCreateBookingSweepsAbandonedAttempts(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, timezone.Location())
	repo := newFakeRepo()

	stale := repo.addBooking(&models.Booking{
		UserID: "u2", Date: date, Time: "14:00",
		Status: "pending", PaymentStatus: "pending",
		CreatedAt: testNow.Add(-31 * time.Minute),
	})
	fresh := repo.addBooking(&models.Booking{
		UserID: "u3", Date: date, Time: "15:00",
		Status: "pending", PaymentStatus: "pending",
		CreatedAt: testNow.Add(-10 * time.Minute),
	})
	paid := repo.addBooking(&models.Booking{
		UserID: "u4", Date: date, Time: "16:00",
		Status: "pending", PaymentStatus: "paid",
		CreatedAt: testNow.Add(-2 * time.Hour),
	})

	uc := newCreateUC(repo)
	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "17:00",
	}); err != nil {
		t.Fatalf("Execute = %v, want nil", err)
	}

	if _, ok := repo.bookings[stale.ID]; ok {
		t.Error("stale unpaid pending booking survived the sweep")
	}
	if _, ok := repo.bookings[fresh.ID]; !ok {
		t.Error("fresh pending booking was swept")
	}
	if _, ok := repo.bookings[paid.ID]; !ok {
		t.Error("paid booking was swept; only unpaid pending attempts may be")
	}
}

func TestCreateBookingNormalizesDate(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	result, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: "u1", ServiceType: "golftraning", Date: "2025-06-10", Time: "14:00",
	})
	if err != nil {
		t.Fatalf("Execute = %v", err)
	}

	want := domain.NormalizeDate(time.Date(2025, 6, 10, 0, 0, 0, 0, timezone.Location()))
	if !result.Booking.Date.Equal(want) {
		t.Errorf("Date = %v, want midnight-normalized %v", result.Booking.Date, want)
	}
}
