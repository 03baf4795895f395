package domain

import "context"

// EventNotification tells one follower that an organizer they follow created an event.
type EventNotification struct {
	RecipientEmail string `json:"recipient_email"`
	OrganizerName  string `json:"organizer_name"`
	EventID        string `json:"event_id"`
	EventTitle     string `json:"event_title"`
	Description    string `json:"description"`
	StartDate      string `json:"start_date"`
	Location       string `json:"location"`
	Link           string `json:"link"`
}

// NewEventNotification builds the notification for a follower of the event's organizer.
func NewEventNotification(recipientEmail, organizerName string, e *Event) EventNotification {
	return EventNotification{
		RecipientEmail: recipientEmail,
		OrganizerName:  organizerName,
		EventID:        e.ID,
		EventTitle:     e.Title,
		Description:    e.Description,
		StartDate:      e.StartDate.Format(DateLayout),
		Location:       e.Location,
		Link:           e.Link,
	}
}

// NotificationDispatcher hands notifications off for asynchronous delivery.
// Dispatch does not wait for delivery; there is no acknowledgment or retry.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications []EventNotification) error
}
