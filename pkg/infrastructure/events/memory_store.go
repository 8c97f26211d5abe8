package events

import (
	"fmt"
	"sync"
)

// InMemoryEventStore keeps per-variant event streams in memory. Handlers
// run synchronously on the appending goroutine so short-lived tools see
// every event before they exit.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()

	versioned := baseEvent{
		eventType: event.Type(),
		stream:    streamID,
		data:      event.Data(),
		occurred:  event.Timestamp(),
		version:   len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	handlers := s.handlersFor(versioned.eventType)
	s.mutex.Unlock()

	for _, handler := range handlers {
		if handler.CanHandle(versioned.eventType) {
			if err := handler.Handle(versioned); err != nil {
				return fmt.Errorf("handler failed for event %s: %w", versioned.eventType, err)
			}
		}
	}

	return nil
}

func (s *InMemoryEventStore) ReadEvents(streamID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stream, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	out := make([]Event, len(stream))
	copy(out, stream)
	return out, nil
}

func (s *InMemoryEventStore) ReadAllEvents() ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]Event, len(s.allEvents))
	copy(out, s.allEvents)
	return out, nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}

// handlersFor returns a snapshot of the handlers registered for a type;
// callers must hold at least a read lock
func (s *InMemoryEventStore) handlersFor(eventType string) []EventHandler {
	registered := s.subscribers[eventType]
	handlers := make([]EventHandler, len(registered))
	copy(handlers, registered)
	return handlers
}
