package ports

import (
	"context"

	"devis/internal/core/domain/model/notification"
)

// Notifier hands notifications to the delivery channel (mail, alerts).
// Implementations must not block on the final delivery.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification) error
}
