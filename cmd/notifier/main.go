// Command notifier consumes event notification tasks from RabbitMQ and emails followers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"eventhub/config"
	"eventhub/internal/adapters/email"
	"eventhub/internal/adapters/notify"
	"eventhub/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	conn, ch, err := notify.Dial(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Error("rabbitmq connect failed", "err", err)
		os.Exit(1)
	}
	defer conn.Close()
	defer ch.Close()

	worker, err := notify.NewWorker(ch, cfg.NotifyQueue, emailService, logger)
	if err != nil {
		logger.Error("worker init failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("notifier started", "queue", cfg.NotifyQueue)
	if err := worker.Run(ctx); err != nil {
		logger.Error("worker stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("notifier stopped")
}
