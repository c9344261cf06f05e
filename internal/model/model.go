// Package model defines domain entities used by the coordinator and repositories.
package model

import "strings"

// EventFields are the mutable columns of an event.
type EventFields struct {
	Title       string
	Description string
	Date        string // caller-supplied, never parsed
	Photo       string // opaque reference (URI or path), never the bytes
}

// Event is a single stored record.
type Event struct {
	ID int64 // store-assigned, never reused
	EventFields
}

// DraftMode tells Submit whether to create or update.
// It is either Creating or Editing.
type DraftMode interface{ draftMode() }

// Creating means the next submit inserts a new event.
type Creating struct{}

// Editing means the next submit replaces the event with ID.
type Editing struct{ ID int64 }

func (Creating) draftMode() {}
func (Editing) draftMode()  {}

// Draft holds the in-progress form values. A nil Mode behaves as Creating.
type Draft struct {
	EventFields
	Mode DraftMode
}

// EditingID returns the targeted event id when the draft is in Editing mode.
func (d Draft) EditingID() (int64, bool) {
	if e, ok := d.Mode.(Editing); ok {
		return e.ID, true
	}
	return 0, false
}

// Missing lists required fields that are empty: title, date and photo.
// Whitespace-only values count as empty, which is stricter than a plain
// non-empty check.
func (d Draft) Missing() []string {
	var out []string
	if strings.TrimSpace(d.Title) == "" {
		out = append(out, "title")
	}
	if strings.TrimSpace(d.Date) == "" {
		out = append(out, "date")
	}
	if strings.TrimSpace(d.Photo) == "" {
		out = append(out, "photo")
	}
	return out
}

// Phase is the selection/preview state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelected
	PhasePreviewing
)

func (p Phase) String() string {
	switch p {
	case PhaseSelected:
		return "selected"
	case PhasePreviewing:
		return "previewing"
	default:
		return "idle"
	}
}

// Selection is the highlighted event (a copy, not a live reference) and the preview flag.
type Selection struct {
	Event       *Event
	PreviewOpen bool
}

// Phase derives the state machine position from the selection.
func (s Selection) Phase() Phase {
	switch {
	case s.Event == nil:
		return PhaseIdle
	case s.PreviewOpen:
		return PhasePreviewing
	default:
		return PhaseSelected
	}
}

// ScreenState is everything the screen renders.
type ScreenState struct {
	Events    []Event // mirror of the store
	Draft     Draft
	Selection Selection
}
