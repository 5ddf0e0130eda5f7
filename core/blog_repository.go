package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// BlogRepository persists blog posts. Listing is paginated, newest first.
type BlogRepository interface {
	List(ctx context.Context, page, perPage int) ([]BlogPost, int, error)
	Get(ctx context.Context, id int64) (*BlogPost, error)
	Create(ctx context.Context, p BlogPost) (*BlogPost, error)
	Update(ctx context.Context, id int64, p BlogPost) (*BlogPost, error)
	Delete(ctx context.Context, id int64) error
}

type PgBlogRepository struct {
	db PgxPool
}

func NewPgBlogRepository(db PgxPool) *PgBlogRepository {
	return &PgBlogRepository{db: db}
}

func (r *PgBlogRepository) List(ctx context.Context, page, perPage int) ([]BlogPost, int, error) {
	if page <= 0 || perPage <= 0 {
		return nil, 0, errors.New("invalid pagination")
	}
	const countQ = `SELECT COUNT(*) FROM blog_posts`
	var total int
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `
SELECT id, title, summary, body, image, author, published_at, created_at, updated_at
FROM blog_posts
ORDER BY published_at DESC, id DESC
LIMIT $1 OFFSET $2
`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]BlogPost, 0, perPage)
	for rows.Next() {
		var p BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Summary, &p.Body, &p.Image, &p.Author, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *PgBlogRepository) Get(ctx context.Context, id int64) (*BlogPost, error) {
	const q = `
SELECT id, title, summary, body, image, author, published_at, created_at, updated_at
FROM blog_posts WHERE id=$1`
	var p BlogPost
	if err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Summary, &p.Body, &p.Image, &p.Author, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgBlogRepository) Create(ctx context.Context, p BlogPost) (*BlogPost, error) {
	const q = `
INSERT INTO blog_posts (title, summary, body, image, author)
VALUES ($1,$2,$3,$4,$5) RETURNING id, published_at, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, p.Title, p.Summary, p.Body, p.Image, p.Author).Scan(&p.ID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgBlogRepository) Update(ctx context.Context, id int64, p BlogPost) (*BlogPost, error) {
	const q = `
UPDATE blog_posts SET title=$1, summary=$2, body=$3, image=$4, author=$5, updated_at=now()
WHERE id=$6 RETURNING id, published_at, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, p.Title, p.Summary, p.Body, p.Image, p.Author, id).Scan(&p.ID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgBlogRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id=$1`, id)
	return err
}
