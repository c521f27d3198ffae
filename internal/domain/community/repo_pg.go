package community

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mamacare/mamacare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type postRepoPG struct{ pool *pgxpool.Pool }

func NewPostRepoPG(pool *pgxpool.Pool) PostRepository {
	return &postRepoPG{pool: pool}
}

func (r *postRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const postCols = `p.id, p.account_id, p.author_name, p.topic, p.title, p.body,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
	p.created_at, p.updated_at`

func (r *postRepoPG) scan(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.AccountID, &p.AuthorName, &p.Topic, &p.Title,
		&p.Body, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *postRepoPG) Create(ctx context.Context, p *Post) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO posts (id, account_id, author_name, topic, title, body)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.AccountID, p.AuthorName, p.Topic, p.Title, p.Body)
	return err
}

func (r *postRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+postCols+` FROM posts p WHERE p.id = $1`, id))
}

func (r *postRepoPG) List(ctx context.Context, topic string, limit, offset int) ([]*Post, int, error) {
	var (
		total int
		rows  pgx.Rows
		err   error
	)
	if topic != "" {
		if err = r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM posts p WHERE p.topic = $1`, topic).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.conn(ctx).Query(ctx, `SELECT `+postCols+` FROM posts p WHERE p.topic = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`, topic, limit, offset)
	} else {
		if err = r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM posts p`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.conn(ctx).Query(ctx, `SELECT `+postCols+` FROM posts p ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Post
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *postRepoPG) Update(ctx context.Context, p *Post) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE posts SET topic=$2, title=$3, body=$4, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Topic, p.Title, p.Body)
	return err
}

func (r *postRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

type commentRepoPG struct{ pool *pgxpool.Pool }

func NewCommentRepoPG(pool *pgxpool.Pool) CommentRepository {
	return &commentRepoPG{pool: pool}
}

func (r *commentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const commentCols = `id, post_id, account_id, author_name, body, created_at`

func (r *commentRepoPG) scan(row pgx.Row) (*Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AccountID, &c.AuthorName, &c.Body, &c.CreatedAt)
	return &c, err
}

func (r *commentRepoPG) Create(ctx context.Context, c *Comment) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO comments (id, post_id, account_id, author_name, body)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.PostID, c.AccountID, c.AuthorName, c.Body)
	return err
}

func (r *commentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+commentCols+` FROM comments WHERE id = $1`, id))
}

func (r *commentRepoPG) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*Comment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+commentCols+` FROM comments WHERE post_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Comment
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *commentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

func (r *commentRepoPG) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	return err
}
