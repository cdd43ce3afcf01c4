package repository

import (
	"context"

	"omnipost/domain/model"
)

// IPublishRecord stores the audit trail of publish attempts.
type IPublishRecord interface {
	Insert(ctx context.Context, rec *model.PublishRecord) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string, externalRef, errorMessage *string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.PublishRecord, error)
}
