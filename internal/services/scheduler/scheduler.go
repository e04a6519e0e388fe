// Package scheduler finds users whose premium access expires today and
// publishes an expiry notice for each one. It runs as its own binary
// next to the API server.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/beluxlabs/belux-backend/internal/lib/sl"
	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/rabbitmq"
)

// Repository declares the single read the scheduler needs.
type Repository interface {
	FindPremiumExpiringToday(ctx context.Context) ([]*models.User, error)
}

// Service is the expiry-notice scheduler.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a new scheduler Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// FindExpiringPremiumDueToday runs one sweep immediately, then once
// every 24 hours. Blocks until the ticker stops.
func (s *Service) FindExpiringPremiumDueToday(ctx context.Context, channel *amqp.Channel) {
	s.runSweep(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		s.runSweep(ctx, channel)
	}
}

func (s *Service) runSweep(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting sweep for premium access expiring today")
	users, err := s.repo.FindPremiumExpiringToday(ctx)
	if err != nil {
		s.log.Error("failed to find expiring users", sl.Err(err))
		return
	}
	if len(users) == 0 {
		s.log.Info("no expiring premium access found")
		return
	}
	s.log.Info("found expiring premium access", "count", len(users))
	for _, user := range users {
		expiresAt := user.EffectiveExpiry()
		if expiresAt == nil {
			continue
		}
		notice := models.ExpiryNotice{
			Email:     user.Email,
			FullName:  user.FullName,
			ExpiresAt: *expiresAt,
		}
		if err := rabbitmq.PublishMessage(channel, rabbitmq.ExchangeName, rabbitmq.PremiumExpiringRoutingKey, notice); err != nil {
			s.log.Error("failed to publish expiry notice", sl.Err(err))
		}
	}
}
