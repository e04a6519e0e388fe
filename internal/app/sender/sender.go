// Package sender wires the binary that consumes expiry notices and
// sends the renewal e-mails.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/beluxlabs/belux-backend/internal/config"
	"github.com/beluxlabs/belux-backend/internal/lib/smtp"
	"github.com/beluxlabs/belux-backend/internal/rabbitmq"
	senderservice "github.com/beluxlabs/belux-backend/internal/services/sender"
)

// App is the sender worker.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New connects the queue and builds the worker.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.New(transport, logger),
		logger:        logger,
	}, nil
}

// Run consumes until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.Consume(ctx, a.logger, a.ch, rabbitmq.PremiumExpiringQueue, a.senderService.SendExpiryNotice)
	if err != nil {
		a.logger.Error("failed to start expiry notice consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
