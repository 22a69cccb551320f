// Package app assembles the release pipeline from configuration. Both
// binaries build their services through it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"alugae-backend/internal/config"
	"alugae-backend/internal/events"
	"alugae-backend/internal/lock"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/notify"
	"alugae-backend/internal/repository/postgres"
	"alugae-backend/internal/service"
)

type App struct {
	Store     *postgres.Store
	Transport *notify.MultiChannelTransport

	Calendar service.CalendarService
	Waitlist service.WaitlistService
	Notifier service.Notifier
	Release  service.ReleaseService
	Booking  service.BookingService
	Contract service.ContractService

	redis    *lock.RedisLocker
	producer *events.Producer
}

// New wires repositories, notification channels, the vehicle locker and the
// release event producer. broadcaster may be nil.
func New(ctx context.Context, cfg *config.Config, db *sql.DB, broadcaster service.SweepBroadcaster) (*App, error) {
	a := &App{Store: postgres.NewStore(db)}
	baseURL := cfg.Release.PublicBaseURL

	// Notification channels
	var channels []notify.Channel
	if cfg.SendGrid.APIKey != "" {
		channels = append(channels, notify.NewEmailTransport(cfg.SendGrid, baseURL))
	}
	if cfg.Firebase.CredentialsFile != "" {
		push, err := notify.NewPushTransport(ctx, cfg.Firebase, baseURL)
		if err != nil {
			return nil, fmt.Errorf("init push notifications: %w", err)
		}
		channels = append(channels, push)
	}
	channels = append(channels, notify.NewInAppTransport(a.Store.NotificationRepository, baseURL))
	a.Transport = notify.NewMultiChannelTransport(channels...)
	logger.Info("Notification channels configured", "channels", a.Transport.Channels())

	// Vehicle locker
	var locker service.VehicleLocker
	if cfg.Redis.Addr != "" {
		a.redis = lock.NewRedisLocker(cfg.Redis, cfg.LockTTL())
		if err := a.redis.Ping(ctx); err != nil {
			logger.Warn("Redis not reachable at startup, releases will fail until it is", "addr", cfg.Redis.Addr, "error", err)
		}
		locker = a.redis
		logger.Info("Using Redis vehicle locks", "addr", cfg.Redis.Addr, "ttl", cfg.LockTTL())
	} else {
		locker = lock.NewLocalLocker()
		logger.Info("Using in-process vehicle locks")
	}

	// Release events
	var publisher service.ReleaseEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		a.producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ReleaseTopic)
		publisher = a.producer
		logger.Info("Publishing release events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.ReleaseTopic)
	}

	a.Calendar = service.NewCalendarService(a.Store.CalendarBlockRepository)
	a.Waitlist = service.NewWaitlistService(a.Store.WaitlistRepository, a.Store.VehicleRepository)
	a.Notifier = service.NewNotifier(a.Store.UserRepository, a.Store.WaitlistRepository, a.Transport)
	a.Release = service.NewReleaseService(
		a.Store.BookingRepository,
		a.Store.ContractRepository,
		a.Store.VehicleRepository,
		a.Calendar,
		a.Waitlist,
		a.Notifier,
		locker,
		publisher,
		broadcaster,
	)
	a.Booking = service.NewBookingService(a.Store.BookingRepository, a.Store.ContractRepository, a.Calendar, a.Release)
	a.Contract = service.NewContractService(a.Store.ContractRepository)

	return a, nil
}

// RedisProbe reports whether the lock server answers. It is nil when Redis
// is not configured.
func (a *App) RedisProbe() func(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Ping
}

// Close releases the Redis and Kafka clients.
func (a *App) Close() error {
	var errs []error
	if a.producer != nil {
		errs = append(errs, a.producer.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}
