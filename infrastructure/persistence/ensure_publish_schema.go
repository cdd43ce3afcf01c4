package persistence

import "database/sql"

// EnsurePublishSchema creates the publish_records table when missing.
func EnsurePublishSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS publish_records (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		status TEXT NOT NULL,
		external_ref TEXT,
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_publish_records_user ON publish_records (user_id, created_at DESC)`)
	return err
}
