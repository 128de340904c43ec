package note

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

// sinceLayouts are the accepted formats of the list date filter
var sinceLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// CreateNoteInput represents the input for creating a note
type CreateNoteInput struct {
	Title   string // blank titles become domain.DefaultNoteTitle
	Content string
	Tag     domain.NoteTag
	Remark  bool
	Image   string
}

// UpdateNoteInput represents an edit of a note. Nil fields are left unchanged.
type UpdateNoteInput struct {
	Title   *string
	Content *string
	Tag     *domain.NoteTag
	Remark  *bool
	Image   *string
}

// NoteService handles note operations
type NoteService struct {
	Store  domain.Store
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewNoteService creates a new NoteService instance
func NewNoteService(store domain.Store, logger logrus.FieldLogger) *NoteService {
	return &NoteService{
		Store:  store,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateNote creates a note dated now
func (s *NoteService) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	now := s.Now().UTC()
	note := &domain.Note{
		ID:        uuid.New(),
		Title:     domain.NoteTitle(input.Title),
		Content:   input.Content,
		Tag:       input.Tag,
		Remark:    input.Remark,
		Image:     input.Image,
		Date:      now,
		CreatedAt: now,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.Notes().Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote retrieves a note by its ID
func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	return s.Store.Notes().GetByID(ctx, id)
}

// ListNotes retrieves notes most recent first, optionally restricted to a tag and to notes
// dated at or after since. An unknown tag or an unparseable since is ignored.
func (s *NoteService) ListNotes(ctx context.Context, tag, since string) domain.Result[[]*domain.Note] {
	var filter domain.NoteFilter
	if t := domain.NoteTag(tag); t.IsValid() {
		filter.Tag = t
	}
	if since != "" {
		if at, ok := parseSince(since); ok {
			filter.Since = at
		} else {
			s.Logger.WithField("since", since).Debug("ignoring unparseable note date filter")
		}
	}

	notes, err := s.Store.Notes().List(ctx, filter)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to list notes, returning empty list")
		return domain.Degraded([]*domain.Note{}, err)
	}
	return domain.Ok(notes)
}

// UpdateNote edits a note. Setting a blank title restores the default title.
func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	var updated *domain.Note
	err := s.Store.Atomic(ctx, func(ctx context.Context, repos domain.Repositories) error {
		note, err := repos.Notes().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Title != nil {
			note.Title = domain.NoteTitle(*input.Title)
		}
		if input.Content != nil {
			note.Content = *input.Content
		}
		if input.Tag != nil {
			note.Tag = *input.Tag
		}
		if input.Remark != nil {
			note.Remark = *input.Remark
		}
		if input.Image != nil {
			note.Image = *input.Image
		}

		if err := note.Validate(); err != nil {
			return err
		}
		if err := repos.Notes().Update(ctx, note); err != nil {
			return err
		}
		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteNote removes a note
func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return s.Store.Notes().Delete(ctx, id)
}

func parseSince(raw string) (time.Time, bool) {
	for _, layout := range sinceLayouts {
		if at, err := time.Parse(layout, raw); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}
