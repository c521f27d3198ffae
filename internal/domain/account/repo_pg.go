package account

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

const accountCols = `id, subject, full_name, email, phone, county,
	language, reminders_enabled, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Subject, &a.FullName, &a.Email, &a.Phone, &a.County,
		&a.Language, &a.Reminders, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Account) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO accounts (id, subject, full_name, email, phone, county,
			language, reminders_enabled)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.Subject, a.FullName, a.Email, a.Phone, a.County,
		a.Language, a.Reminders)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+accountCols+` FROM accounts WHERE id = $1`, id))
}

func (r *repoPG) GetBySubject(ctx context.Context, subject string) (*Account, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+accountCols+` FROM accounts WHERE subject = $1`, subject))
}

func (r *repoPG) Update(ctx context.Context, a *Account) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE accounts SET full_name=$2, email=$3, phone=$4, county=$5,
			language=$6, reminders_enabled=$7, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.FullName, a.Email, a.Phone, a.County, a.Language, a.Reminders)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}
