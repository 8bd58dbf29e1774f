package store

import "context"

// CreateLead records a buyer's interest in a listing for its owner.
func (s *Store) CreateLead(ctx context.Context, ownerID, buyerID, propertyID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (owner_id, buyer_id, property_id)
		VALUES (?, ?, ?)`, ownerID, buyerID, propertyID)
	return err
}

// UnreadLeadCount returns the number of unread leads for an owner.
func (s *Store) UnreadLeadCount(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE owner_id = ? AND is_read = 0`,
		ownerID).Scan(&n)
	return n, err
}

// MarkLeadsRead marks every lead for the owner as read.
func (s *Store) MarkLeadsRead(ctx context.Context, ownerID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE leads SET is_read = 1 WHERE owner_id = ?`, ownerID)
	return err
}

// ClearLeads deletes every lead for the owner.
func (s *Store) ClearLeads(ctx context.Context, ownerID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM leads WHERE owner_id = ?`, ownerID)
	return err
}
