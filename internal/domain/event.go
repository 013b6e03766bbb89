package domain

import "time"

// EventType classifies a timeline event. The set is closed: adapters mapping
// external records to the timeline must fold unknown kinds into EventTypeOther.
type EventType string

const (
	EventTypeEmail              EventType = "email"
	EventTypeMeeting            EventType = "meeting"
	EventTypeCall               EventType = "call"
	EventTypeNote               EventType = "note"
	EventTypeLinkedInMessage    EventType = "linkedin_message"
	EventTypeLinkedInConnection EventType = "linkedin_connection"
	EventTypeWhatsApp           EventType = "whatsapp"
	EventTypeOther              EventType = "other"
)

// AllEventTypes returns the full enumeration in canonical order.
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeEmail,
		EventTypeMeeting,
		EventTypeCall,
		EventTypeNote,
		EventTypeLinkedInMessage,
		EventTypeLinkedInConnection,
		EventTypeWhatsApp,
		EventTypeOther,
	}
}

// ParseEventType validates a string against the enumeration.
func ParseEventType(s string) (EventType, bool) {
	t := EventType(s)
	switch t {
	case EventTypeEmail, EventTypeMeeting, EventTypeCall, EventTypeNote,
		EventTypeLinkedInMessage, EventTypeLinkedInConnection,
		EventTypeWhatsApp, EventTypeOther:
		return t, true
	}
	return "", false
}

// Direction indicates whether a communication event was received or sent.
// Only meaningful for email-type events.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// TimelineEvent is the canonical, source-agnostic shape of one interaction in
// a contact's history. Events are computed per request and never persisted.
//
// Metadata is a passthrough map of source-specific extras; callers must not
// assume its shape beyond the keys documented on each adapter.
type TimelineEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Title      string         `json:"title"`
	Snippet    string         `json:"snippet,omitempty"`
	Direction  Direction      `json:"direction,omitempty"`
	Source     string         `json:"source,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
