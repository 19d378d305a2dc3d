package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Mailer sends transactional email. Booking confirmations are the only
// current user of it.
type Mailer interface {
	SendBookingConfirmation(toEmail, toName string, details *BookingDetails) error
}

type BookingDetails struct {
	BookingID   string
	StationName string
	SlotCode    string
	StartTime   time.Time
	EndTime     time.Time
	Amount      float64
	Currency    string
}

type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewSMTPMailer(host string, port int, username, password, fromEmail, fromName string) *SMTPMailer {
	return &SMTPMailer{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *SMTPMailer) SendBookingConfirmation(toEmail, toName string, details *BookingDetails) error {
	subject := fmt.Sprintf("Booking confirmed at %s", details.StationName)

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\r\n\r\n", toName)
	fmt.Fprintf(&body, "Your parking slot is confirmed.\r\n\r\n")
	fmt.Fprintf(&body, "Booking ID: %s\r\n", details.BookingID)
	fmt.Fprintf(&body, "Station: %s\r\n", details.StationName)
	fmt.Fprintf(&body, "Slot: %s\r\n", details.SlotCode)
	fmt.Fprintf(&body, "From: %s\r\n", details.StartTime.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&body, "To: %s\r\n", details.EndTime.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&body, "Amount paid: %.2f %s\r\n\r\n", details.Amount, details.Currency)
	fmt.Fprintf(&body, "See you there.\r\n")

	return m.send(toEmail, subject, body.String())
}

func (m *SMTPMailer) send(to, subject, body string) error {
	from := fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
