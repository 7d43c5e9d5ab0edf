package repository

import (
	"context"
	"gsinfo-directory/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepository interface {
	MarkProcessed(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) (bool, error)
}

type webhookEventRepoImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepoImpl{db: db}
}

// MarkProcessed records the event and reports whether this call inserted it.
// A false result means another delivery of the same event got there first.
func (r *webhookEventRepoImpl) MarkProcessed(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	if event.ProcessedAt.IsZero() {
		event.ProcessedAt = time.Now()
	}

	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
