package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

type Repository interface {
	List(ctx context.Context, params shared.ListParams) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `p.id, p.name, p.model, p.category_id, COALESCE(c.name, ''), p.summary, p.description,
	p.advantages, p.application_areas, p.image_url, p.is_published, p.created_at, p.updated_at`

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (p.name ILIKE $` + n + ` OR p.model ILIKE $` + n + `)`
	}
	if params.Facet != "" {
		if categoryID, err := strconv.ParseInt(params.Facet, 10, 64); err == nil {
			args = append(args, categoryID)
			where += ` AND p.category_id = $` + strconv.Itoa(len(args))
		}
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id` + where +
		` ORDER BY p.created_at DESC, p.id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, params.Size, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Model, &p.CategoryID, &p.CategoryName, &p.Summary, &p.Description,
			&p.Advantages, &p.ApplicationAreas, &p.ImageURL, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.id = $1`
	var p Product
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Model, &p.CategoryID, &p.CategoryName, &p.Summary,
		&p.Description, &p.Advantages, &p.ApplicationAreas, &p.ImageURL, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	const query = `INSERT INTO products (name, model, category_id, summary, description, advantages, application_areas,
		image_url, is_published, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, product.Name, product.Model, product.CategoryID, product.Summary,
		product.Description, product.Advantages, product.ApplicationAreas, product.ImageURL, product.IsPublished, now).
		Scan(&product.ID)
	if err != nil {
		return Product{}, mapPgError(err)
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	const query = `UPDATE products SET name = $1, model = $2, category_id = $3, summary = $4, description = $5,
		advantages = $6, application_areas = $7, image_url = $8, is_published = $9, updated_at = $10 WHERE id = $11`
	tag, err := r.db.Exec(ctx, query, product.Name, product.Model, product.CategoryID, product.Summary,
		product.Description, product.Advantages, product.ApplicationAreas, product.ImageURL, product.IsPublished,
		time.Now(), id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// unique_violation
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
