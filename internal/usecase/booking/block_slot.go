package booking

import (
	"context"
	"time"

	"github.com/tngolf/booking-api/internal/audit"
	"github.com/tngolf/booking-api/internal/authz"
	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/httperr"
	"github.com/tngolf/booking-api/internal/models"
	"github.com/tngolf/booking-api/internal/timezone"
)

type BlockSlotInput struct {
	Date   string // YYYY-MM-DD
	Time   string // HH:mm slot label
	Reason string
}

// BlockSlot takes a slot out of the bookable grid. A block and a live
// booking may never coexist on one slot, in either creation order.
type BlockSlot struct {
	repo   domain.Repository
	policy authz.Policy
	audit  *audit.Dispatcher
}

func NewBlockSlot(
	repo domain.Repository,
	policy authz.Policy,
	auditor *audit.Dispatcher,
) *BlockSlot {
	return &BlockSlot{
		repo:   repo,
		policy: policy,
		audit:  auditor,
	}
}

func (uc *BlockSlot) Execute(
	ctx context.Context,
	actorEmail string,
	in BlockSlotInput,
) (*models.BlockedSlot, error) {

	if !uc.policy.IsCoach(actorEmail) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	if !domain.IsValidTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	date = domain.NormalizeDate(date)

	s := &models.BlockedSlot{
		Date:   date,
		Time:   in.Time,
		Reason: in.Reason,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// Blocking is refused while a paid or confirmed booking holds
		// the slot; pending unpaid attempts do not protect it.
		conflict, err := tx.FindBookingConflict(ctx, date, in.Time, "")
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrBusiness("slot_taken")
		}

		existing, err := tx.FindBlockedSlot(ctx, date, in.Time)
		if err != nil {
			return err
		}
		if existing != nil {
			return httperr.ErrBusiness("already_blocked")
		}

		return tx.CreateBlockedSlot(ctx, s)
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("already_blocked")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "slot_blocked",
		Entity:   "blocked_slot",
		EntityID: &s.ID,
		Metadata: map[string]any{"date": in.Date, "time": in.Time},
	})

	return s, nil
}

// UnblockSlot removes a block by id; no other precondition.
type UnblockSlot struct {
	repo   domain.Repository
	policy authz.Policy
	audit  *audit.Dispatcher
}

func NewUnblockSlot(
	repo domain.Repository,
	policy authz.Policy,
	auditor *audit.Dispatcher,
) *UnblockSlot {
	return &UnblockSlot{
		repo:   repo,
		policy: policy,
		audit:  auditor,
	}
}

func (uc *UnblockSlot) Execute(
	ctx context.Context,
	actorEmail string,
	id string,
) error {

	if !uc.policy.IsCoach(actorEmail) {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteBlockedSlot(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "slot_unblocked",
		Entity:   "blocked_slot",
		EntityID: &id,
	})

	return nil
}
