package propsdk

import "context"

// NotificationCount returns the number of unread leads for the account.
func (s *Session) NotificationCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.client.getJSON(ctx, "/api/notifications/count", &out, s.token); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkNotificationsRead marks every lead as read.
func (s *Session) MarkNotificationsRead(ctx context.Context) error {
	return s.client.postJSON(ctx, "/api/notifications/mark-read", nil, nil, s.token)
}

// ClearNotifications deletes every lead for the account.
func (s *Session) ClearNotifications(ctx context.Context) error {
	return s.client.postJSON(ctx, "/api/notifications/clear", nil, nil, s.token)
}
