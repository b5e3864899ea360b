package events

import "context"

// Streams.
const (
	StreamApprovals = "events:approvals"
	StreamAdmin     = "events:admin"
)

// Event types.
const (
	EventItemStatusChanged = "item_status_changed"
	EventRoleGranted       = "role_granted"
	EventRoleRevoked       = "role_revoked"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
