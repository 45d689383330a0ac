package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	domain "github.com/tngolf/booking-api/internal/domain/booking"
	"github.com/tngolf/booking-api/internal/timezone"
)

// Sender performs one notification effect.
type Sender interface {
	Send(domain.Effect) error
}

// Mailer sends the Swedish transactional emails over SMTP.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	coachEmail string
}

func NewMailer(host string, port int, user, password, from, coachEmail string) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(host, port, user, password),
		from:       from,
		coachEmail: coachEmail,
	}
}

func (m *Mailer) Send(ef domain.Effect) error {
	svc, ok := domain.Services[ef.Booking.ServiceType]
	if !ok {
		svc = domain.Service{Name: ef.Booking.ServiceType}
	}

	dateStr := ef.Booking.Date.In(timezone.Location()).Format("2006-01-02")
	name := ef.User.Name
	if name == "" {
		name = "där"
	}

	var to, subject, body string

	switch ef.Kind {
	case domain.EffectBookingConfirmed:
		to = ef.User.Email
		subject = fmt.Sprintf("Bokningsbekräftelse - %s %s", svc.Name, dateStr)
		body = fmt.Sprintf(
			"Hej %s!\n\nDin bokning är nu bekräftad.\n\nTjänst: %s\nDatum: %s\nTid: %s\n",
			name, svc.Name, dateStr, ef.Booking.Time,
		)
		if ef.Booking.Amount > 0 {
			body += fmt.Sprintf("Belopp: %d kr\n", ef.Booking.Amount)
		}
		if ef.ReceiptURL != "" {
			body += fmt.Sprintf("\nKvitto: %s\n", ef.ReceiptURL)
		}
		body += "\nVi ser fram emot att träffa dig!\n\nMed vänliga hälsningar,\nTN Golf\n"

	case domain.EffectBookingCancelled:
		to = ef.User.Email
		subject = fmt.Sprintf("Avbokning - %s %s", svc.Name, dateStr)
		body = fmt.Sprintf(
			"Hej %s!\n\nDin bokning har avbokats.\n\nTjänst: %s\nDatum: %s\nTid: %s\n\nMed vänliga hälsningar,\nTN Golf\n",
			name, svc.Name, dateStr, ef.Booking.Time,
		)

	case domain.EffectCancellationRequested:
		to = m.coachEmail
		subject = fmt.Sprintf("Avbokningsförfrågan - %s %s %s", svc.Name, dateStr, ef.Booking.Time)
		body = fmt.Sprintf(
			"%s (%s) har begärt avbokning.\n\nTjänst: %s\nDatum: %s\nTid: %s\nBoknings-ID: %s\n",
			ef.User.Name, ef.User.Email, svc.Name, dateStr, ef.Booking.Time, ef.Booking.ID,
		)

	case domain.EffectPaidBookingPending:
		to = m.coachEmail
		subject = fmt.Sprintf("Ny betald bokning - %s %s %s", svc.Name, dateStr, ef.Booking.Time)
		body = fmt.Sprintf(
			"%s (%s) har betalat en bokning som väntar på din bekräftelse.\n\nTjänst: %s\nDatum: %s\nTid: %s\nBelopp: %d kr\nBoknings-ID: %s\n",
			ef.User.Name, ef.User.Email, svc.Name, dateStr, ef.Booking.Time, ef.Booking.Amount, ef.Booking.ID,
		)
		if ef.ReceiptURL != "" {
			body += fmt.Sprintf("Kvitto: %s\n", ef.ReceiptURL)
		}

	default:
		return fmt.Errorf("unknown effect kind %q", ef.Kind)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
