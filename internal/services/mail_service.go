package services

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type IMailService interface {
	SendPasswordResetCode(to, code string) error
	SendUpgradeConfirmation(to, tierName string) error
}

type MailConfig struct {
	APIKey    string // SendGrid API key
	FromEmail string
	FromName  string
	AppName   string
}

type sendgridMailService struct {
	cfg MailConfig
}

func NewMailService(cfg MailConfig) IMailService {
	if cfg.AppName == "" {
		cfg.AppName = "MindCaddy"
	}
	return &sendgridMailService{cfg: cfg}
}

func (m *sendgridMailService) send(to, subject, plain, html string) error {
	if m.cfg.APIKey == "" {
		// Local dev without SendGrid: log instead of failing the caller flow.
		log.Printf("mail (dry-run) to=%s subject=%q", to, subject)
		return nil
	}

	from := sgmail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), plain, html)

	client := sendgrid.NewSendClient(m.cfg.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (m *sendgridMailService) SendPasswordResetCode(to, code string) error {
	subject := fmt.Sprintf("%s password reset code", m.cfg.AppName)
	plain := fmt.Sprintf("Your password reset code is %s. It expires in 15 minutes.", code)
	html := fmt.Sprintf("<p>Your password reset code is <strong>%s</strong>.</p><p>It expires in 15 minutes.</p>", code)
	return m.send(to, subject, plain, html)
}

func (m *sendgridMailService) SendUpgradeConfirmation(to, tierName string) error {
	subject := fmt.Sprintf("Welcome to %s %s", m.cfg.AppName, tierName)
	plain := fmt.Sprintf("Your %s membership is active. Your mental game coach is ready when you are.", tierName)
	html := fmt.Sprintf("<p>Your <strong>%s</strong> membership is active.</p><p>Your mental game coach is ready when you are.</p>", tierName)
	return m.send(to, subject, plain, html)
}
