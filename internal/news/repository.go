package news

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
	List(ctx context.Context, params shared.ListParams) ([]Article, int, error)
	Get(ctx context.Context, id int64) (Article, error)
	GetBySlug(ctx context.Context, slug string) (Article, error)
	Create(ctx context.Context, article Article) (Article, error)
	Update(ctx context.Context, id int64, article Article) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const articleColumns = `id, title, slug, type, summary, content, cover_url, is_published, published_at, created_at, updated_at`

func (r *repository) List(ctx context.Context, params shared.ListParams) ([]Article, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (title ILIKE $` + n + ` OR summary ILIKE $` + n + `)`
	}
	if params.Facet != "" {
		args = append(args, params.Facet)
		where += ` AND type = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM news_articles`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + articleColumns + ` FROM news_articles` + where +
		` ORDER BY published_at DESC NULLS LAST, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, params.Size, params.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Article
	for rows.Next() {
		var a Article
		if err := scanArticle(rows.Scan, &a); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Article, error) {
	query := `SELECT ` + articleColumns + ` FROM news_articles WHERE id = $1`
	var a Article
	err := scanArticle(r.db.QueryRow(ctx, query, id).Scan, &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return Article{}, shared.ErrNotFound
	}
	return a, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (Article, error) {
	query := `SELECT ` + articleColumns + ` FROM news_articles WHERE slug = $1`
	var a Article
	err := scanArticle(r.db.QueryRow(ctx, query, slug).Scan, &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return Article{}, shared.ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, article Article) (Article, error) {
	const query = `INSERT INTO news_articles (title, slug, type, summary, content, cover_url, is_published, published_at,
		created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, article.Title, article.Slug, article.Type, article.Summary, article.Content,
		article.CoverURL, article.IsPublished, article.PublishedAt, now).Scan(&article.ID)
	if err != nil {
		return Article{}, mapPgError(err)
	}
	article.CreatedAt = now
	article.UpdatedAt = now
	return article, nil
}

func (r *repository) Update(ctx context.Context, id int64, article Article) error {
	const query = `UPDATE news_articles SET title = $1, slug = $2, type = $3, summary = $4, content = $5, cover_url = $6,
		is_published = $7, published_at = $8, updated_at = $9 WHERE id = $10`
	tag, err := r.db.Exec(ctx, query, article.Title, article.Slug, article.Type, article.Summary, article.Content,
		article.CoverURL, article.IsPublished, article.PublishedAt, time.Now(), id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news_articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanArticle(scan func(...any) error, a *Article) error {
	return scan(&a.ID, &a.Title, &a.Slug, &a.Type, &a.Summary, &a.Content, &a.CoverURL, &a.IsPublished,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
}

// unique_violation, mainly on the slug index
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
