package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventhub/internal/domain"
)

// Inline is a NotificationDispatcher that sends emails from a background goroutine.
type Inline struct {
	email   domain.EmailService
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ domain.NotificationDispatcher = (*Inline)(nil)

// NewInline returns an in-process dispatcher. Each batch gets timeout to finish sending.
func NewInline(email domain.EmailService, logger *slog.Logger, timeout time.Duration) *Inline {
	return &Inline{email: email, logger: logger, timeout: timeout}
}

// Dispatch returns immediately. The batch keeps sending after ctx is canceled.
func (d *Inline) Dispatch(ctx context.Context, notifications []domain.EventNotification) error {
	batch := make([]domain.EventNotification, len(notifications))
	copy(batch, notifications)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		for i := range batch {
			n := &batch[i]
			if err := d.email.SendEventNotification(ctx, n); err != nil {
				d.logger.ErrorContext(ctx, "send event notification", "event_id", n.EventID, "to", n.RecipientEmail, "err", err)
			}
		}
	}()
	return nil
}

// Wait blocks until every dispatched batch has finished.
func (d *Inline) Wait() {
	d.wg.Wait()
}
