// internal/services/notification_service.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is one toast-style entry the UI renders and discards.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

const defaultNotificationCapacity = 50

// NotificationService keeps a bounded in-memory feed of user-facing messages.
// Every entry is also logged, so nothing user-visible disappears from the
// server-side record when the ring rolls over.
type NotificationService struct {
	mtx      sync.Mutex
	entries  []Notification
	capacity int
}

func NewNotificationService(capacity int) *NotificationService {
	if capacity <= 0 {
		capacity = defaultNotificationCapacity
	}
	return &NotificationService{capacity: capacity}
}

func (s *NotificationService) Success(message string) {
	logrus.WithField("notification", "success").Info(message)
	s.push(NotificationSuccess, message)
}

func (s *NotificationService) Failure(message string) {
	logrus.WithField("notification", "error").Error(message)
	s.push(NotificationError, message)
}

func (s *NotificationService) push(level NotificationLevel, message string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.entries = append(s.entries, Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
}

// Recent returns the feed newest-first.
func (s *NotificationService) Recent() []Notification {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	out := make([]Notification, len(s.entries))
	for i, n := range s.entries {
		out[len(s.entries)-1-i] = n
	}
	return out
}
