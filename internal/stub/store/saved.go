package store

import (
	"context"
	"database/sql"
)

// ToggleSave flips the saved flag for a user/listing pair and returns the
// new state.
func (s *Store) ToggleSave(ctx context.Context, userID, propertyID int64) (bool, error) {
	var saved bool
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		var n int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM saved_properties
			WHERE user_id = ? AND property_id = ?`, userID, propertyID).Scan(&n)
		if err != nil {
			return err
		}
		if n > 0 {
			_, err = tx.ExecContext(ctx, `
				DELETE FROM saved_properties
				WHERE user_id = ? AND property_id = ?`, userID, propertyID)
			saved = false
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO saved_properties (user_id, property_id)
			VALUES (?, ?)`, userID, propertyID)
		saved = true
		return err
	})
	return saved, err
}

// IsSaved reports whether the user has saved the listing.
func (s *Store) IsSaved(ctx context.Context, userID, propertyID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM saved_properties
		WHERE user_id = ? AND property_id = ?`, userID, propertyID).Scan(&n)
	return n > 0, err
}
