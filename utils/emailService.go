package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"tutorme/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEnrollmentReceipt emails a payment receipt to the student.
// Fire-and-forget with a bounded timeout: a delivery failure is logged
// and never affects the enrollment that triggered it.
func SendEnrollmentReceipt(toEmail, toName, courseTitle string, amount int64) {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" || toEmail == "" {
		return
	}

	go func() {
		from := mail.NewEmail("TutorMe", cfg.EmailSender)
		to := mail.NewEmail(toName, toEmail)
		subject := fmt.Sprintf("Enrollment confirmed: %s", courseTitle)
		body := fmt.Sprintf(
			"Hi %s,\n\nYour enrollment in %s is confirmed. %s was charged to your wallet.\n\nHappy learning!",
			toName, courseTitle, FormatAmount(amount),
		)
		message := mail.NewSingleEmail(from, subject, to, body, "")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
		resp, err := client.SendWithContext(ctx, message)
		if err != nil {
			log.Printf("Error sending enrollment receipt to %s: %v", toEmail, err)
			return
		}
		if resp.StatusCode >= 400 {
			log.Printf("Enrollment receipt to %s rejected: %d %s", toEmail, resp.StatusCode, resp.Body)
		}
	}()
}
