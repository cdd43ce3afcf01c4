package persistence

import (
	"context"
	"database/sql"
	"time"

	"omnipost/domain/model"
	"omnipost/domain/repository"
)

type PublishRecordRepository struct{ db *sql.DB }

func NewPublishRecordRepository(db *sql.DB) repository.IPublishRecord {
	return &PublishRecordRepository{db: db}
}

func (r *PublishRecordRepository) Insert(ctx context.Context, rec *model.PublishRecord) (int64, error) {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO publish_records (user_id, account_id, platform, status, external_ref, error_message, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		rec.UserID, rec.AccountID, rec.Platform, rec.Status, rec.ExternalRef, rec.ErrorMessage, rec.CreatedAt, rec.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	rec.ID = id
	return id, nil
}

func (r *PublishRecordRepository) UpdateStatus(ctx context.Context, id int64, status string, externalRef, errorMessage *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE publish_records SET status=$2, external_ref=$3, error_message=$4, updated_at=$5 WHERE id=$1`,
		id, status, externalRef, errorMessage, time.Now().UTC())
	return err
}

func (r *PublishRecordRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.PublishRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, account_id, platform, status, external_ref, error_message, created_at, updated_at
		 FROM publish_records WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.PublishRecord
	for rows.Next() {
		rec := &model.PublishRecord{}
		var externalRef, errorMessage sql.NullString
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.AccountID, &rec.Platform, &rec.Status, &externalRef, &errorMessage, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		if externalRef.Valid {
			v := externalRef.String
			rec.ExternalRef = &v
		}
		if errorMessage.Valid {
			v := errorMessage.String
			rec.ErrorMessage = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
