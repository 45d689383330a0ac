package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tngolf/booking-api/internal/audit"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
)

// ======================================================
// IN-MEMORY REPOSITORY
// ======================================================

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	blocked  map[string]*models.BlockedSlot
	users    map[string]*models.User
	seq      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[string]*models.Booking),
		blocked:  make(map[string]*models.BlockedSlot),
		users:    make(map[string]*models.User),
	}
}

func (r *fakeRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s%d", prefix, r.seq)
}

func (r *fakeRepo) addUser(u *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = r.nextID("u")
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeRepo) addBooking(b *models.Booking) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = r.nextID("b")
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.bookings[b.ID] = b
	return b
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func (r *fakeRepo) FindBookingBySession(ctx context.Context, sessionID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.CheckoutSessionID == sessionID && sessionID != "" {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	r.addBooking(b)
	return nil
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) DeleteBooking(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) FindBookingConflict(ctx context.Context, date time.Time, timeLabel string, excludeID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == excludeID {
			continue
		}
		if domain.DateKey(b.Date) != domain.DateKey(date) || b.Time != timeLabel {
			continue
		}
		if domain.Occupies(domain.Status(b.Status), domain.PaymentStatus(b.PaymentStatus)) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) DeleteStalePendingBookings(ctx context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, b := range r.bookings {
		if b.Status == string(domain.StatusPending) &&
			b.PaymentStatus == string(domain.PaymentPending) &&
			b.CreatedAt.Before(olderThan) {
			delete(r.bookings, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) ListOccupiedBookings(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if domain.Occupies(domain.Status(b.Status), domain.PaymentStatus(b.PaymentStatus)) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBlockedSlots(ctx context.Context) ([]models.BlockedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BlockedSlot
	for _, s := range r.blocked {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeRepo) FindBlockedSlot(ctx context.Context, date time.Time, timeLabel string) (*models.BlockedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.blocked {
		if domain.DateKey(s.Date) == domain.DateKey(date) && s.Time == timeLabel {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateBlockedSlot(ctx context.Context, s *models.BlockedSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID("s")
	}
	r.blocked[s.ID] = s
	return nil
}

func (r *fakeRepo) DeleteBlockedSlot(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocked[id]; !ok {
		return httperr.ErrBusiness("blocked_slot_not_found")
	}
	delete(r.blocked, id)
	return nil
}

func (r *fakeRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return u, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// PAYMENT BRIDGE FAKE
// ======================================================

type fakeBridge struct {
	session    *domain.CheckoutSession
	sessionErr error
	status     *domain.CheckoutStatus
	receipt    *domain.Receipt
	event      *domain.WebhookEvent
	verifyErr  error
}

func (f *fakeBridge) CreateCheckoutSession(ctx context.Context, b *models.Booking, u *models.User, successURL, cancelURL string) (*domain.CheckoutSession, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &domain.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (f *fakeBridge) RetrieveCheckout(ctx context.Context, sessionID string) (*domain.CheckoutStatus, error) {
	if f.status != nil {
		return f.status, nil
	}
	return &domain.CheckoutStatus{}, nil
}

func (f *fakeBridge) RetrieveReceipt(ctx context.Context, paymentIntentID string) (*domain.Receipt, error) {
	if f.receipt != nil {
		return f.receipt, nil
	}
	return nil, nil
}

func (f *fakeBridge) VerifyWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if f.event != nil {
		return f.event, nil
	}
	return &domain.WebhookEvent{Type: domain.EventIgnored}, nil
}

var _ domain.PaymentBridge = (*fakeBridge)(nil)

// ======================================================
// EFFECT RECORDER
// ======================================================

type sinkRecorder struct {
	mu      sync.Mutex
	effects []domain.Effect
}

func (s *sinkRecorder) Dispatch(ef domain.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects = append(s.effects, ef)
}

func (s *sinkRecorder) kinds() []domain.EffectKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.EffectKind
	for _, ef := range s.effects {
		out = append(out, ef.Kind)
	}
	return out
}

var _ domain.EffectSink = (*sinkRecorder)(nil)

// ======================================================
// SHARED FIXTURES
// ======================================================

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil, zap.NewNop())
}

func errCode(err error) string {
	code, _ := httperr.BusinessCode(err)
	return code
}
