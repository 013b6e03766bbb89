package timeline

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

const (
	// noteSnippetMaxLen bounds the note preview; full content stays available
	// under the fullContent metadata key.
	noteSnippetMaxLen = 200

	noSubjectTitle = "(No subject)"
	noteTitle      = "Note"
	meetingTitle   = "Meeting"
	callTitle      = "Call"
)

// activityTypeByTag maps an integration's native activity tag to a canonical
// event type. Tags outside the map fold into EventTypeOther rather than
// failing, so new integration tags never break the feed.
var activityTypeByTag = map[string]domain.EventType{
	"linkedin_message":    domain.EventTypeLinkedInMessage,
	"linkedin_connection": domain.EventTypeLinkedInConnection,
	"whatsapp":            domain.EventTypeWhatsApp,
}

// activityTagByType is the inverse mapping, used to push type filters down
// into the activity store query.
var activityTagByType = func() map[domain.EventType]string {
	m := make(map[domain.EventType]string, len(activityTypeByTag))
	for tag, t := range activityTypeByTag {
		m[t] = tag
	}
	return m
}()

func knownActivityTags() []string {
	tags := make([]string, 0, len(activityTypeByTag))
	for tag := range activityTypeByTag {
		tags = append(tags, tag)
	}
	return tags
}

// stripPolicy removes all markup; notes are written in a rich-text editor
// and snippets must be plain text.
var stripPolicy = bluemonday.StrictPolicy()

func stripHTML(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// truncate cuts s to max runes, appending an ellipsis when it was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// mergeMetadata shallow-merges extra source metadata over the base keys the
// normalizer always emits. Base keys win on collision so documented keys
// keep their documented meaning.
func mergeMetadata(base map[string]any, extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return base
	}
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range base {
		merged[k] = v
	}
	return merged
}

func normalizeEmail(e *storage.Email) domain.TimelineEvent {
	title := e.Subject
	if title == "" {
		title = noSubjectTitle
	}

	return domain.TimelineEvent{
		ID:         e.ID,
		Type:       domain.EventTypeEmail,
		OccurredAt: e.OccurredAt,
		Title:      title,
		Snippet:    e.Snippet,
		Direction:  domain.Direction(e.Direction),
		Source:     e.Source,
		Metadata:   mergeMetadata(map[string]any{"threadId": e.ThreadID}, e.Metadata),
	}
}

func normalizeMeeting(m *storage.Meeting) domain.TimelineEvent {
	eventType := domain.EventTypeMeeting
	title := m.Subject
	if m.MeetingType == "call" {
		eventType = domain.EventTypeCall
		if title == "" {
			title = callTitle
		}
	} else if title == "" {
		title = meetingTitle
	}

	return domain.TimelineEvent{
		ID:         m.ID,
		Type:       eventType,
		OccurredAt: m.OccurredAt,
		Title:      title,
		Snippet:    m.Summary,
		Source:     m.Source,
		Metadata:   mergeMetadata(map[string]any{"externalId": m.ExternalID}, m.Metadata),
	}
}

func normalizeNote(n *storage.Note) domain.TimelineEvent {
	return domain.TimelineEvent{
		ID:         n.ID,
		Type:       domain.EventTypeNote,
		OccurredAt: n.CreatedAt,
		Title:      noteTitle,
		Snippet:    truncate(stripHTML(n.Content), noteSnippetMaxLen),
		Source:     "manual",
		Metadata: map[string]any{
			"pinned":      n.Pinned,
			"updatedAt":   n.UpdatedAt,
			"fullContent": n.Content,
		},
	}
}

func normalizeActivity(a *storage.Activity) domain.TimelineEvent {
	eventType, ok := activityTypeByTag[a.ActivityType]
	if !ok {
		eventType = domain.EventTypeOther
	}

	title := a.Title
	if title == "" {
		title = "Activity"
	}

	return domain.TimelineEvent{
		ID:         a.ID,
		Type:       eventType,
		OccurredAt: a.OccurredAt,
		Title:      title,
		Snippet:    a.Description,
		Source:     a.Source,
		Metadata:   mergeMetadata(map[string]any{"externalId": a.ExternalID}, a.Metadata),
	}
}
