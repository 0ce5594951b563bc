package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps the mailgun client used for transactional mail. Failures to
// send are logged and reported to the caller; they are never fatal to the
// request that triggered them.
type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("CITYALERT_MG_DOMAIN")
	apiKey := os.Getenv("CITYALERT_MG_PUBLIC_API_KEY")
	m.From = os.Getenv("CITYALERT_EMAIL_FROM")
	if m.From == "" {
		m.From = fmt.Sprintf("CityAlert <no-reply@%s>", domain)
	}
	m.Client = mailgun.NewMailgun(domain, apiKey)
}

func (m *Mailgun) send(to, subject, body string) (string, error) {
	if m.Client == nil {
		return "", fmt.Errorf("mailgun client not initialized")
	}

	message := m.Client.NewMessage(m.From, subject, body, to)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, id, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("mailgun send to %s failed: %v", to, err)
		return "", err
	}
	log.Printf("mailgun queued message id=%s resp=%s", id, resp)
	return id, nil
}

func (m *Mailgun) SendWelcomeMessage(email, fullname string) (string, error) {
	subject := "Welcome to CityAlert"
	body := fmt.Sprintf("Hi %s,\n\nYour CityAlert account is ready. Raise alerts, complete missions and earn coins.\n", fullname)
	return m.send(email, subject, body)
}

func (m *Mailgun) SendResetPassword(email, resetLink string) (string, error) {
	subject := "Reset your CityAlert password"
	body := fmt.Sprintf("A password reset was requested for this account.\n\nReset it here: %s\n\nThe link expires in one hour. If you did not ask for this, ignore this mail.\n", resetLink)
	return m.send(email, subject, body)
}
