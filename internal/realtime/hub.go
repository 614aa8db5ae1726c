// Package realtime fans task and project events out to subscribers
// grouped by project. Delivery is fire and forget: a slow subscriber
// drops events instead of blocking writers.
package realtime

import (
	"sync"
	"time"

	"github.com/taskhive/taskhive/internal/pkg/logger"
)

// Event names mirror the client protocol
const (
	EventTaskCreated    = "task_created"
	EventTaskUpdated    = "task_updated"
	EventTaskDeleted    = "task_deleted"
	EventProjectUpdated = "project_updated"
	EventCommentAdded   = "comment_added"
)

// Event is a project-scoped notification
type Event struct {
	Type      string      `json:"type"`
	ProjectID string      `json:"projectId"`
	UserID    string      `json:"userId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// subscriberBuffer bounds per-subscriber queues; events past it are dropped
const subscriberBuffer = 16

type subscriber struct {
	ch        chan Event
	projectID string
}

// Hub routes events to project subscribers. Safe for concurrent use.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{} // projectID -> subscribers
	log  *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*subscriber]struct{}),
		log:  log,
	}
}

// Subscribe registers a listener for one project's events. The returned
// cancel func must be called when the listener goes away.
func (h *Hub) Subscribe(projectID string) (<-chan Event, func()) {
	sub := &subscriber{
		ch:        make(chan Event, subscriberBuffer),
		projectID: projectID,
	}

	h.mu.Lock()
	group, ok := h.subs[projectID]
	if !ok {
		group = make(map[*subscriber]struct{})
		h.subs[projectID] = group
	}
	group[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if group, ok := h.subs[projectID]; ok {
			if _, present := group[sub]; present {
				delete(group, sub)
				close(sub.ch)
				if len(group) == 0 {
					delete(h.subs, projectID)
				}
			}
		}
		h.mu.Unlock()
	}

	return sub.ch, cancel
}

// Publish delivers an event to every subscriber of its project. Never
// blocks: subscribers with full buffers miss the event.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[event.ProjectID] {
		select {
		case sub.ch <- event:
		default:
			h.log.Warn("realtime: dropping %s event for slow subscriber on project %s", event.Type, event.ProjectID)
		}
	}
}

// SubscriberCount reports the listeners on one project
func (h *Hub) SubscriberCount(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[projectID])
}
