package sqlstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/simaogato/walletflow-backend/internal/domain"
)

const noteColumns = `id, title, content, tag, remark, image, date, created_at`

type noteRow struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Tag       string    `db:"tag"`
	Remark    bool      `db:"remark"`
	Image     string    `db:"image"`
	Date      time.Time `db:"date"`
	CreatedAt time.Time `db:"created_at"`
}

func newNoteRow(n *domain.Note) noteRow {
	return noteRow{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tag:       string(n.Tag),
		Remark:    n.Remark,
		Image:     n.Image,
		Date:      n.Date.UTC(),
		CreatedAt: n.CreatedAt.UTC(),
	}
}

func (r noteRow) toDomain() *domain.Note {
	return &domain.Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Tag:       domain.NoteTag(r.Tag),
		Remark:    r.Remark,
		Image:     r.Image,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

// noteRepository implements domain.NoteRepository
type noteRepository struct {
	q sqlx.ExtContext
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	var row noteRow
	query := r.q.Rebind(`SELECT ` + noteColumns + ` FROM notes WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, id); err != nil {
		return nil, lookupErr("note", id, err)
	}
	return row.toDomain(), nil
}

// List retrieves notes most recent date first, restricted by tag and by a lower date bound
func (r *noteRepository) List(ctx context.Context, filter domain.NoteFilter) ([]*domain.Note, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Tag != "" {
		where = append(where, `tag = ?`)
		args = append(args, string(filter.Tag))
	}
	if !filter.Since.IsZero() {
		where = append(where, `date >= ?`)
		args = append(args, filter.Since.UTC())
	}

	query := `SELECT ` + noteColumns + ` FROM notes`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	var rows []noteRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, unavailable("failed to list notes", err)
	}

	notes := make([]*domain.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toDomain())
	}
	return notes, nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES (:id, :title, :content, :tag, :remark, :image, :date, :created_at)
	`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newNoteRow(note)); err != nil {
		return unavailable("failed to insert note", err)
	}
	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	query := `
		UPDATE notes
		SET title = :title, content = :content, tag = :tag, remark = :remark, image = :image
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, newNoteRow(note))
	return expectOne("note", note.ID, res, err)
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM notes WHERE id = ?`), id)
	return expectOne("note", id, res, err)
}
