package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendBookingConfirmation(guestEmail string, guestName string, confirmationNumber string, summary string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

func (s *smtp) SendBookingConfirmation(guestEmail string, guestName string, confirmationNumber string, summary string) error {
	to := []string{guestEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Your reservation %s is confirmed\r\n\r\nHello %s,\r\n\r\nYour reservation is confirmed. Confirmation number: %s\r\n\r\n%s\r\n\r\nWe look forward to welcoming you.",
		guestEmail, confirmationNumber, guestName, confirmationNumber, summary))

	err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message)
	if err != nil {
		return err
	}

	return nil
}
