package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteTag classifies a note
type NoteTag string

const (
	NoteTagCommon        NoteTag = "Common"
	NoteTagDrink         NoteTag = "Drink"
	NoteTagFriends       NoteTag = "Friends"
	NoteTagStudy         NoteTag = "Study"
	NoteTagWork          NoteTag = "Work"
	NoteTagLife          NoteTag = "Life"
	NoteTagEntertainment NoteTag = "Entertainment"
	NoteTagFamily        NoteTag = "Family"
	NoteTagHealth        NoteTag = "Health"
)

// NoteTags lists every tag in display order
var NoteTags = []NoteTag{
	NoteTagCommon,
	NoteTagDrink,
	NoteTagFriends,
	NoteTagStudy,
	NoteTagWork,
	NoteTagLife,
	NoteTagEntertainment,
	NoteTagFamily,
	NoteTagHealth,
}

// IsValid reports whether t is one of NoteTags
func (t NoteTag) IsValid() bool {
	for _, tag := range NoteTags {
		if t == tag {
			return true
		}
	}
	return false
}

// DefaultNoteTitle replaces a blank note title
const DefaultNoteTitle = "Untitled"

// NoteTitle returns title, or DefaultNoteTitle when title is blank
func NoteTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return DefaultNoteTitle
	}
	return title
}

// Note is a free-form journal entry
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Tag       NoteTag
	Remark    bool   // pinned as remarkable
	Image     string // image path or URL
	Date      time.Time
	CreatedAt time.Time
}

// Validate ensures the note adheres to domain rules
func (n *Note) Validate() error {
	if !n.Tag.IsValid() {
		return fmt.Errorf("%w: unknown note tag %q", ErrInvalidArgument, n.Tag)
	}
	if n.Date.IsZero() {
		return fmt.Errorf("%w: note date is required", ErrInvalidArgument)
	}
	return nil
}
