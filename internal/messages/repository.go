package messages

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Message, int, error)
	Get(ctx context.Context, id int64) (Message, error)
	Create(ctx context.Context, message Message) (Message, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const messageColumns = `id, name, phone, email, company, content, is_read, created_at`

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Message, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (name ILIKE $` + n + ` OR company ILIKE $` + n + ` OR content ILIKE $` + n + `)`
	}
	// The facet narrows by read state: "read" or "unread".
	switch params.Facet {
	case "read":
		where += ` AND is_read = TRUE`
	case "unread":
		where += ` AND is_read = FALSE`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + messageColumns + ` FROM contact_messages` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, params.Size, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Company, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Message, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages WHERE id = $1`
	var m Message
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Company, &m.Content, &m.IsRead, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Create(ctx context.Context, message Message) (Message, error) {
	const query = `INSERT INTO contact_messages (name, phone, email, company, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, message.Name, message.Phone, message.Email, message.Company, message.Content, now).
		Scan(&message.ID)
	if err != nil {
		return Message{}, err
	}
	message.IsRead = false
	message.CreatedAt = now
	return message, nil
}

func (r *repository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
