package ports

import (
	"context"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// EventPublisher delivers a domain event to every live connection in the
// acting user's channel. Delivery is fire-and-forget.
type EventPublisher interface {
	Publish(ctx context.Context, userID int64, event domain.Event)
}
