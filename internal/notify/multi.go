package notify

import (
	"context"
	"errors"
	"fmt"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
)

type Channel interface {
	Name() string
	SendAvailabilityNotice(ctx context.Context, n *domain.AvailabilityNotice) error
}

// MultiChannelTransport tries every channel. The notice counts as delivered
// when at least one channel accepted it.
type MultiChannelTransport struct {
	channels []Channel
}

func NewMultiChannelTransport(channels ...Channel) *MultiChannelTransport {
	return &MultiChannelTransport{channels: channels}
}

func (t *MultiChannelTransport) Channels() []string {
	names := make([]string, 0, len(t.channels))
	for _, c := range t.channels {
		names = append(names, c.Name())
	}
	return names
}

func (t *MultiChannelTransport) SendAvailabilityNotice(ctx context.Context, n *domain.AvailabilityNotice) error {
	if n == nil || n.User == nil || n.Vehicle == nil {
		return errors.New("incomplete availability notice")
	}
	if len(t.channels) == 0 {
		return errors.New("no notification channel configured")
	}

	var errs []error
	delivered := 0
	for _, c := range t.channels {
		if err := c.SendAvailabilityNotice(ctx, n); err != nil {
			if !errors.Is(err, ErrNoAddress) {
				logger.Warn("Notification channel failed", "channel", c.Name(), "userID", n.User.ID, "error", err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return errors.Join(errs...)
	}
	logger.Debug("Availability notice delivered", "userID", n.User.ID, "vehicleID", n.Vehicle.ID, "channels", delivered, "failed", len(errs))
	return nil
}
