package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is a lifecycle notification pushed to the principals a transition
// affects, so dashboards track posts and projects without polling.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventBidSubmitted     = "bid_submitted"
	EventBidDecided       = "bid_decided"
	EventProjectStatus    = "project_status"
	EventDocumentAttached = "document_attached"
	EventFeedbackLeft     = "feedback_left"
)

type Subscriber struct {
	ID          string
	PrincipalID uuid.UUID
	Conn        *WebSocketConn
	Send        chan []byte
}

type Hub struct {
	subscribers map[string]*Subscriber
	register    chan *Subscriber
	unregister  chan *Subscriber
	mu          sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
	}
}

func (h *Hub) Register(sub *Subscriber) {
	h.register <- sub
}

func (h *Hub) Unregister(sub *Subscriber) {
	h.unregister <- sub
}

// SendToPrincipal delivers an event to every connection held by one principal.
func (h *Hub) SendToPrincipal(principalID uuid.UUID, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		if sub.PrincipalID == principalID {
			select {
			case sub.Send <- payload:
			default:
				// slow consumer, drop rather than block the transition
			}
		}
	}
}

// SendToEngagement notifies both sides of a post/project.
func (h *Hub) SendToEngagement(customerID, editorID uuid.UUID, ev Event) {
	h.SendToPrincipal(customerID, ev)
	h.SendToPrincipal(editorID, ev)
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.ID] = sub
			h.mu.Unlock()
			log.Printf("Subscriber registered: %s (principal: %s)", sub.ID, sub.PrincipalID)

		case sub := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.subscribers[sub.ID]; ok {
				delete(h.subscribers, sub.ID)
				close(old.Send)
				log.Printf("Subscriber unregistered: %s", sub.ID)
			}
			h.mu.Unlock()
		}
	}
}
