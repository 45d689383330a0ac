package notify

import (
	"go.uber.org/zap"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
)

// Dispatcher executes notification effects off the request path.
// Sends are fire-and-forget: a failed send is logged and dropped,
// never surfaced to the transition that emitted it.
type Dispatcher struct {
	sender Sender
	log    *zap.Logger
	queue  chan domain.Effect
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan domain.Effect, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ef := range d.queue {
		if err := d.sender.Send(ef); err != nil {
			d.log.Warn("notification send failed",
				zap.String("kind", string(ef.Kind)),
				zap.String("booking_id", ef.Booking.ID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ef domain.Effect) {
	select {
	case d.queue <- ef:
	default:
		d.log.Warn("notification queue full, dropping effect",
			zap.String("kind", string(ef.Kind)),
			zap.String("booking_id", ef.Booking.ID),
		)
	}
}

// Compile-time check
var _ domain.EffectSink = (*Dispatcher)(nil)
