package notify

import (
	"context"
	"fmt"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/repository"
)

// InAppTransport stores the notice in the user's notification inbox.
type InAppTransport struct {
	noteRepo repository.NotificationRepository
	baseURL  string
}

func NewInAppTransport(noteRepo repository.NotificationRepository, baseURL string) *InAppTransport {
	return &InAppTransport{noteRepo: noteRepo, baseURL: baseURL}
}

func (t *InAppTransport) Name() string { return "in_app" }

func (t *InAppTransport) SendAvailabilityNotice(ctx context.Context, n *domain.AvailabilityNotice) error {
	content := RenderAvailability(n, t.baseURL)
	note := &domain.Notification{
		UserID:     n.User.ID,
		Title:      content.Title,
		Message:    content.Text,
		Attributes: content.Data,
	}
	if err := t.noteRepo.Create(ctx, note); err != nil {
		return fmt.Errorf("failed to store in-app notification: %w", err)
	}
	return nil
}
