package notify

import (
	"context"
	"fmt"

	"alugae-backend/internal/config"
	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// messageSender is satisfied by *messaging.Client.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushTransport struct {
	client  messageSender
	baseURL string
}

func NewPushTransport(ctx context.Context, cfg config.FirebaseConfig, baseURL string) (*PushTransport, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}
	return &PushTransport{client: client, baseURL: baseURL}, nil
}

func (t *PushTransport) Name() string { return "push" }

func (t *PushTransport) SendAvailabilityNotice(ctx context.Context, n *domain.AvailabilityNotice) error {
	if n.User.DeviceToken == "" {
		return fmt.Errorf("user %d: %w", n.User.ID, ErrNoAddress)
	}

	content := RenderAvailability(n, t.baseURL)
	message := &messaging.Message{
		Token: n.User.DeviceToken,
		Notification: &messaging.Notification{
			Title: content.Title,
			Body:  content.Text,
		},
		Data: content.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "vehicle_available",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: content.Title,
						Body:  content.Text,
					},
					Sound: "default",
				},
			},
		},
	}

	logger.ExternalServiceCall("fcm", "Send", "userID", n.User.ID, "vehicleID", n.Vehicle.ID)
	id, err := t.client.Send(ctx, message)
	logger.ExternalServiceResult("fcm", "Send", err, "userID", n.User.ID, "messageID", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
