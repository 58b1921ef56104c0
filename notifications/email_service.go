package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/Yash790975/vidhyakendra-backend-sub000/configs"
)

// Notifier is injected into everything that sends mail so tests and the
// activation flow never depend on a process-wide transporter.
type Notifier interface {
	Send(toName, toEmail, subject, htmlContent string) error
}

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewEmailService builds the Brevo-backed notifier, or a no-op one when the
// environment is not configured (local dev, CI).
func NewEmailService() Notifier {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured, emails will be logged only.")
		return &NoopService{}
	}

	log.Println("✅ Email service initialized successfully.")
	return &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
}

func (s *BrevoService) Send(toName, toEmail, subject, htmlContent string) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: %s", string(bodyBytes))
	}

	return nil
}

// NoopService logs instead of sending. Used when mail is unconfigured and in
// tests.
type NoopService struct{}

func (s *NoopService) Send(toName, toEmail, subject, htmlContent string) error {
	log.Printf("email (noop): to=%s subject=%q", toEmail, subject)
	return nil
}

// SendWelcome mails the activation welcome message. Failures are logged and
// never abort the caller.
func SendWelcome(n Notifier, toEmail, instituteName, ownerName string) {
	subject := fmt.Sprintf("Welcome to Vidhyakendra, %s!", instituteName)
	body := fmt.Sprintf(
		"<h1>Welcome aboard, %s!</h1><p>Your institute <b>%s</b> is now active. You can sign in to your dashboard and start setting up classes, teachers and students.</p>",
		ownerName, instituteName,
	)
	if err := n.Send(ownerName, toEmail, subject, body); err != nil {
		log.Printf("🔥 Failed to send welcome email to %s: %v", toEmail, err)
	}
}
