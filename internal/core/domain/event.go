package domain

// EventType is the kind of change a domain event announces.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// EntityKind names the resource a domain event refers to.
type EntityKind string

const (
	EntityTask EntityKind = "task"
	EntityNote EntityKind = "note"
)

// Event is an ephemeral notification published into the acting user's
// channel after a mutation commits.
type Event struct {
	Type    EventType
	Entity  EntityKind
	Payload any
}

// Name is the wire name clients subscribe to, e.g. "task_created".
func (e Event) Name() string {
	return string(e.Entity) + "_" + string(e.Type)
}

// DeletedPayload is the body of every *_deleted event.
type DeletedPayload struct {
	ID int64 `json:"id"`
}
