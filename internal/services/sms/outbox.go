package sms

import (
	"context"
	"log"
	"time"

	"github.com/lats-hub/repairgo/internal/database"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/pkg/errors"
)

const maxAttempts = 10

// Outbox retries queued messages against the gateway. Messages land here
// when the gateway was unreachable at submit time; the submitter already
// got a "queued" acknowledgement, so the worker owns delivery from then on.
type Outbox struct {
	db     *database.DB
	client *Client
}

// NewOutbox wires the retry worker over the queue tables.
func NewOutbox(db *database.DB, client *Client) *Outbox {
	return &Outbox{db: db, client: client}
}

// Enqueue records a message for background delivery and marks its log row
// queued. Called in place of Send when the gateway call fails.
func (o *Outbox) Enqueue(logID uint, cause error) error {
	entry := models.SMSOutbox{
		SMSLogID:    logID,
		NextAttempt: time.Now().Add(time.Minute),
	}
	if cause != nil {
		entry.LastError = cause.Error()
	}
	if err := o.db.Create(&entry).Error; err != nil {
		return errors.Wrap(err, "sms outbox enqueue")
	}
	return errors.Wrap(
		o.db.Model(&models.SMSLog{}).Where("id = ?", logID).
			Update("status", models.SMSStatusQueued).Error,
		"sms log update",
	)
}

// ProcessPending attempts delivery for every due outbox entry. Each entry
// is retried with a growing delay until maxAttempts, then marked failed.
func (o *Outbox) ProcessPending(ctx context.Context) error {
	var pending []models.SMSOutbox
	err := o.db.Where("delivered_at IS NULL AND attempts < ? AND next_attempt <= ?",
		maxAttempts, time.Now()).Find(&pending).Error
	if err != nil {
		return errors.Wrap(err, "sms outbox scan")
	}

	for _, entry := range pending {
		var logRow models.SMSLog
		if err := o.db.First(&logRow, entry.SMSLogID).Error; err != nil {
			log.Printf("⚠️ SMS outbox: missing log row %d: %v", entry.SMSLogID, err)
			continue
		}

		sendErr := o.client.Send(ctx, logRow.Recipient, logRow.Body)
		entry.Attempts++

		if sendErr == nil {
			now := time.Now()
			entry.DeliveredAt = &now
			o.db.Save(&entry)
			o.db.Model(&logRow).Updates(map[string]interface{}{
				"status": models.SMSStatusSent,
				"error":  "",
			})
			continue
		}

		entry.LastError = sendErr.Error()
		entry.NextAttempt = time.Now().Add(time.Duration(entry.Attempts) * 5 * time.Minute)
		o.db.Save(&entry)

		if entry.Attempts >= maxAttempts {
			o.db.Model(&logRow).Updates(map[string]interface{}{
				"status": models.SMSStatusFailed,
				"error":  sendErr.Error(),
			})
			log.Printf("❌ SMS to %s failed permanently after %d attempts", logRow.Recipient, entry.Attempts)
		}
	}
	return nil
}
