package reminder

import (
	"context"
	"time"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reminderCols = `id, account_id, kind, title, body, due_date, sent_at,
	created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Reminder, error) {
	var rem Reminder
	err := row.Scan(&rem.ID, &rem.AccountID, &rem.Kind, &rem.Title, &rem.Body,
		&rem.DueDate, &rem.SentAt, &rem.CreatedAt, &rem.UpdatedAt)
	return &rem, err
}

func (r *repoPG) Create(ctx context.Context, rem *Reminder) error {
	rem.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO reminders (id, account_id, kind, title, body, due_date)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rem.ID, rem.AccountID, rem.Kind, rem.Title, rem.Body, rem.DueDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+reminderCols+` FROM reminders WHERE id = $1`, id))
}

func (r *repoPG) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Reminder, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reminders WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+reminderCols+` FROM reminders WHERE account_id = $1 ORDER BY due_date LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Reminder
	for rows.Next() {
		rem, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rem)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListDueUnsent(ctx context.Context, asOf time.Time) ([]*Reminder, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+reminderCols+` FROM reminders WHERE sent_at IS NULL AND due_date <= $1 ORDER BY due_date`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Reminder
	for rows.Next() {
		rem, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rem)
	}
	return items, rows.Err()
}

func (r *repoPG) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE reminders SET sent_at=$2, updated_at=NOW() WHERE id = $1`, id, sentAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	return err
}
