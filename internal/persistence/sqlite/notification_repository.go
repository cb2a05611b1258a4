package sqlite

import (
	"context"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// NotificationRepository implements persistence.NotificationRepository using
// SQLite. The log is append-only, so no update or delete statements exist.
type NotificationRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewNotificationRepository creates a new SQLite notification repository.
func NewNotificationRepository(pool *ConnectionPool) *NotificationRepository {
	return &NotificationRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const notificationColumns = `id, subject, message, recipients, sent_at, type, employee_id, status`

// AppendNotification writes one record to the log.
func (r *NotificationRepository) AppendNotification(ctx context.Context, notification persistence.Notification) error {
	recipients, err := encodeStrings(notification.Recipients)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.helper.Exec(ctx, query,
		notification.ID,
		notification.Subject,
		notification.Message,
		recipients,
		encodeTime(notification.SentAt),
		notification.Type,
		notification.EmployeeID,
		notification.Status,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// ListNotifications returns the log, most recent first.
func (r *NotificationRepository) ListNotifications(ctx context.Context) ([]persistence.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY sent_at DESC, id ASC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var notifications []persistence.Notification
	for rows.Next() {
		var notification persistence.Notification
		var recipients, sentAt string

		err := rows.Scan(
			&notification.ID,
			&notification.Subject,
			&notification.Message,
			&recipients,
			&sentAt,
			&notification.Type,
			&notification.EmployeeID,
			&notification.Status,
		)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}

		if notification.Recipients, err = decodeStrings("recipients", recipients); err != nil {
			return nil, err
		}
		if notification.SentAt, err = parseTime("sent_at", sentAt); err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return notifications, nil
}

var _ persistence.NotificationRepository = (*NotificationRepository)(nil)
