package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendMatchFound(toEmail, subject, educatorName string, score float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendMatchFound notifies a learner that a matching invocation produced a best
// pairing. Delivery failure is reported but callers treat it as non-fatal.
func (s *emailService) SendMatchFound(toEmail, subject, educatorName string, score float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "We found an educator for you")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your best match is ready!</h2>
			<p>For <strong>%s</strong> we matched you with <strong>%s</strong> (similarity %.0f%%).</p>
			<p>Open the app to send a connection request.</p>
		</div>
	`, subject, educatorName, score)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send match notification to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Match notification sent to %s\n", toEmail)
	return nil
}
