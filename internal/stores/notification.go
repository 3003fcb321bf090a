package stores

import "sync"

type Color string

const (
	ColorSuccess Color = "success"
	ColorError   Color = "error"
	ColorWarning Color = "warning"
	ColorInfo    Color = "info"
)

// Notification is the state of the single on-screen message.
type Notification struct {
	Message string
	Color   Color
	Visible bool
}

// NotificationStore holds at most one message. Adding replaces it.
type NotificationStore struct {
	mu    sync.RWMutex
	state Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Add shows message. The color defaults to success.
func (s *NotificationStore) Add(message string, color ...Color) {
	c := ColorSuccess
	if len(color) > 0 && color[0] != "" {
		c = color[0]
	}
	s.mu.Lock()
	s.state = Notification{Message: message, Color: c, Visible: true}
	s.mu.Unlock()
}

// Hide keeps the message but marks it hidden.
func (s *NotificationStore) Hide() {
	s.mu.Lock()
	s.state.Visible = false
	s.mu.Unlock()
}

func (s *NotificationStore) Clear() {
	s.mu.Lock()
	s.state = Notification{}
	s.mu.Unlock()
}

func (s *NotificationStore) State() Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
