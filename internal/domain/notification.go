package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a fire-and-forget toast event emitted by cart mutations.
// Delivery is best-effort and UI-only.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotification builds a notification with a fresh ID and timestamp.
func NewNotification(title, description string, severity Severity) Notification {
	return Notification{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Severity:    severity,
		CreatedAt:   time.Now().UTC(),
	}
}
