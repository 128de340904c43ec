package grpc

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/walletflow-backend/internal/domain"
	"github.com/simaogato/walletflow-backend/internal/usecase/note"
	"github.com/simaogato/walletflow-backend/internal/usecase/task"
)

// Notes

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" validate:"required"`
	Tag     string `json:"tag" validate:"required,oneof=Common Drink Friends Study Work Life Entertainment Family Health"`
	Remark  bool   `json:"remark"`
	Image   string `json:"image"`
}

type updateNoteRequest struct {
	ID      string  `json:"id" validate:"required,uuid"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Tag     *string `json:"tag" validate:"omitempty,oneof=Common Drink Friends Study Work Life Entertainment Family Health"`
	Remark  *bool   `json:"remark"`
	Image   *string `json:"image"`
}

// listNotesRequest filters by tag and by a lower date bound; invalid filters are ignored
type listNotesRequest struct {
	Tag  string `json:"tag"`
	Date string `json:"date"`
}

// CreateNote handles the CreateNote RPC
func (s *Server) CreateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createNoteRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	n, err := s.NoteService.CreateNote(ctx, note.CreateNoteInput{
		Title:   in.Title,
		Content: in.Content,
		Tag:     domain.NoteTag(in.Tag),
		Remark:  in.Remark,
		Image:   in.Image,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newNoteView(n))
}

// GetNote handles the GetNote RPC
func (s *Server) GetNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	n, err := s.NoteService.GetNote(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newNoteView(n))
}

// ListNotes handles the ListNotes RPC
func (s *Server) ListNotes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listNotesRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	return encode(newListView(s.NoteService.ListNotes(ctx, in.Tag, in.Date), newNoteView))
}

// UpdateNote handles the UpdateNote RPC
func (s *Server) UpdateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateNoteRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	input := note.UpdateNoteInput{
		Title:   in.Title,
		Content: in.Content,
		Remark:  in.Remark,
		Image:   in.Image,
	}
	if in.Tag != nil {
		tag := domain.NoteTag(*in.Tag)
		input.Tag = &tag
	}

	n, err := s.NoteService.UpdateNote(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newNoteView(n))
}

// DeleteNote handles the DeleteNote RPC
func (s *Server) DeleteNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.NoteService.DeleteNote(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}

// Tasks

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	ID          string  `json:"id" validate:"required,uuid"`
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// CreateTask handles the CreateTask RPC
func (s *Server) CreateTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createTaskRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	t, err := s.TaskService.CreateTask(ctx, task.CreateTaskInput{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newTaskView(t))
}

// GetTask handles the GetTask RPC
func (s *Server) GetTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	t, err := s.TaskService.GetTask(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newTaskView(t))
}

// ListTasks handles the ListTasks RPC
func (s *Server) ListTasks(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return encode(newListView(s.TaskService.ListTasks(ctx), newTaskView))
}

// UpdateTask handles the UpdateTask RPC
func (s *Server) UpdateTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateTaskRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	id, err := parseID("id", in.ID)
	if err != nil {
		return nil, err
	}

	t, err := s.TaskService.UpdateTask(ctx, id, task.UpdateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newTaskView(t))
}

// ToggleTask handles the ToggleTask RPC
func (s *Server) ToggleTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}

	t, err := s.TaskService.ToggleTask(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return encode(newTaskView(t))
}

// DeleteTask handles the DeleteTask RPC
func (s *Server) DeleteTask(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(req)
	if err != nil {
		return nil, err
	}
	if err := s.TaskService.DeleteTask(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return encode(empty)
}
