package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoteTag_IsValid(t *testing.T) {
	for _, tag := range NoteTags {
		assert.True(t, tag.IsValid(), tag)
	}
	assert.False(t, NoteTag("common").IsValid(), "tags are case sensitive")
	assert.False(t, NoteTag("").IsValid())
}

func TestNoteTitle(t *testing.T) {
	assert.Equal(t, DefaultNoteTitle, NoteTitle(""))
	assert.Equal(t, DefaultNoteTitle, NoteTitle("   "))
	assert.Equal(t, "Groceries", NoteTitle("Groceries"))
}

func TestNote_Validate(t *testing.T) {
	tests := []struct {
		name    string
		note    Note
		wantErr bool
		errMsg  string
	}{
		{
			name: "Tagged note should pass",
			note: Note{Title: "Run", Tag: NoteTagHealth, Date: time.Now()},
		},
		{
			name:    "Unknown tag should fail",
			note:    Note{Title: "Run", Tag: NoteTag("Sport"), Date: time.Now()},
			wantErr: true,
			errMsg:  "unknown note tag",
		},
		{
			name:    "Missing date should fail",
			note:    Note{Title: "Run", Tag: NoteTagLife},
			wantErr: true,
			errMsg:  "note date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.note.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTask_Validate(t *testing.T) {
	assert.NoError(t, (&Task{Title: "Pay rent"}).Validate())
	assert.ErrorIs(t, (&Task{Title: " "}).Validate(), ErrInvalidArgument)
}
