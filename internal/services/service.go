package services

import (
	"kursus/pkg/logger"
)

// Upload is an in-memory file handed down from the HTTP layer.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Notifier broadcasts resource-change events after successful mutations.
// Fire and forget: a failed broadcast never gates the mutation.
type Notifier interface {
	Broadcast(event string, payload interface{}) error
}

// Event names broadcast on mutation of shared resources.
const (
	EventUserUpdated   = "userUpdated"
	EventUserDeleted   = "userDeleted"
	EventCourseAdded   = "courseAdded"
	EventCourseUpdated = "courseUpdated"
	EventCourseDeleted = "courseDeleted"
	EventVideoAdded    = "videoAdded"
	EventVideoUpdated  = "videoUpdated"
	EventVideoDeleted  = "videoDeleted"
	EventGroupAdded    = "groupAdded"
)

// broadcast publishes an event if a notifier is wired, logging a warning on
// failure the same way a failed AMQP publish is handled everywhere else.
func broadcast(n Notifier, event string, payload interface{}) {
	if n == nil {
		return
	}
	if err := n.Broadcast(event, payload); err != nil {
		logger.L().Warnf("failed to broadcast %s event: %v", event, err)
	}
}
