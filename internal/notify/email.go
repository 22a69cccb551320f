package notify

import (
	"context"
	"errors"
	"fmt"

	"alugae-backend/internal/config"
	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailTransport struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	baseURL   string
}

func NewEmailTransport(cfg config.SendGridConfig, baseURL string) *EmailTransport {
	return &EmailTransport{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		baseURL:   baseURL,
	}
}

func (t *EmailTransport) Name() string { return "email" }

func (t *EmailTransport) SendAvailabilityNotice(ctx context.Context, n *domain.AvailabilityNotice) error {
	if n.User.Email == "" {
		return fmt.Errorf("user %d: %w", n.User.ID, ErrNoAddress)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content := RenderAvailability(n, t.baseURL)
	from := mail.NewEmail(t.fromName, t.fromEmail)
	to := mail.NewEmail(n.User.Name, n.User.Email)
	message := mail.NewSingleEmail(from, content.Subject, to, content.Text, content.HTML)

	logger.ExternalServiceCall("sendgrid", "Send", "userID", n.User.ID, "vehicleID", n.Vehicle.ID)
	response, err := t.client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "userID", n.User.ID)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ErrNoAddress means the user cannot be reached on a channel.
var ErrNoAddress = errors.New("no address for channel")
