package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/baselomar044-dev/qs-empire/internal/config"
	"github.com/baselomar044-dev/qs-empire/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service delivers digests and raw emails. The transactional API channel
// (Resend-shaped) is preferred; SMTP is used when the API key is absent,
// or as a fallback when the API call fails.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendDigest renders the daily digest and emails it to the recipient
func (s *Service) SendDigest(digest *models.Digest, recipient string) error {
	subject := fmt.Sprintf("🏗️ QS Empire | %d فرص جديدة - %s", digest.TotalCount, digest.Date)

	html, err := s.BuildDigestHTML(digest)
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}

	id, err := s.SendEmail(recipient, subject, html)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"messageId": id, "to": recipient}).Info("Digest sent")
	return nil
}

// SendEmail delivers one HTML email and returns the provider message id.
// SMTP delivery has no message id and returns "smtp".
func (s *Service) SendEmail(to, subject, html string) (string, error) {
	if s.config.ResendAPIKey != "" {
		id, err := s.sendViaAPI(to, subject, html)
		if err == nil {
			return id, nil
		}

		if s.config.SMTPHost == "" {
			return "", err
		}
		logrus.Errorf("Mail API delivery failed, falling back to SMTP: %v", err)
	}

	if err := s.sendViaSMTP(to, subject, html); err != nil {
		return "", err
	}
	return "smtp", nil
}

func (s *Service) sendViaAPI(to, subject, html string) (string, error) {
	req := resendRequest{
		From:    s.config.FromAddress,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.config.ResendAPIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(s.config.ResendBaseURL + "/emails")

	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	var sendResp resendResponse
	if err := json.Unmarshal(resp.Body(), &sendResp); err != nil {
		return "", fmt.Errorf("failed to parse mail provider response: %w", err)
	}

	if sendResp.Error != nil {
		return "", fmt.Errorf("mail provider error: %s", sendResp.Error.Message)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("mail provider returned status %d", resp.StatusCode())
	}

	return sendResp.ID, nil
}

func (s *Service) sendViaSMTP(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}

// Tier buckets a success rate into the badge tiers used by the digest
func (s *Service) Tier(successRate int) string {
	switch {
	case successRate >= s.config.HighSuccessThreshold:
		return "high"
	case successRate >= s.config.MediumSuccessThreshold:
		return "medium"
	default:
		return "low"
	}
}
