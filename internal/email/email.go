package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/DERICHRIS/immantravels/config"
	"github.com/DERICHRIS/immantravels/internal/kafka"
)

// Sender submits plain-text mail over SMTPS (implicit TLS). The dial
// carries a timeout so a hung relay cannot block the worker loop.
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, body := Render(event)
	return s.submit(ctx, event.Email, subject, body)
}

func (s *Sender) submit(ctx context.Context, to, subject, body string) error {
	timeout := time.Duration(s.cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", s.cfg.Addr(), &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.cfg.From, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := message(s.cfg.From, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}

func message(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// Render builds the subject and body for a booking event.
func Render(event kafka.BookingEvent) (subject, body string) {
	switch event.Type {
	case kafka.EventBookingCancelled:
		subject = "Booking Canceled - IMMANUEL Travels"
		seats := make([]string, 0, len(event.Seats))
		for _, s := range event.Seats {
			seats = append(seats, fmt.Sprintf("%d", s.SeatNumber))
		}
		body = fmt.Sprintf("Your booking for %s on %s is canceled.\nCanceled seats: %s\n",
			event.RouteName, event.TravelDate, strings.Join(seats, ", "))
	default:
		subject = "Booking Confirmation - IMMANUEL Travels"
		var b strings.Builder
		fmt.Fprintf(&b, "Your booking is confirmed for %s on %s.\n\n", event.RouteName, event.TravelDate)
		for _, s := range event.Seats {
			fmt.Fprintf(&b, "Seat %d - %s (%s, %d)\n", s.SeatNumber, s.Name, s.Gender, s.Age)
		}
		fmt.Fprintf(&b, "\nBooking reference: %s\n", event.Reference)
		b.WriteString("\nThank you for choosing IMMANUEL Travels.\n")
		body = b.String()
	}
	return subject, body
}
