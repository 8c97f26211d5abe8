package events

import (
	"time"
)

type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string) ([]Event, error)
	ReadAllEvents() ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
}

type baseEvent struct {
	eventType string
	stream    string
	data      interface{}
	occurred  time.Time
	version   int
}

func (e baseEvent) Type() string {
	return e.eventType
}

func (e baseEvent) StreamID() string {
	return e.stream
}

func (e baseEvent) Data() interface{} {
	return e.data
}

func (e baseEvent) Timestamp() time.Time {
	return e.occurred
}

func (e baseEvent) Version() int {
	return e.version
}

func NewEvent(eventType, streamID string, data interface{}) Event {
	return baseEvent{
		eventType: eventType,
		stream:    streamID,
		data:      data,
		occurred:  time.Now(),
		version:   1,
	}
}
