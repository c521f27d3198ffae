package child

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

// =========== Child Repository ===========

type childRepoPG struct{ pool *pgxpool.Pool }

func NewChildRepoPG(pool *pgxpool.Pool) ChildRepository {
	return &childRepoPG{pool: pool}
}

func (r *childRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const childCols = `id, account_id, name, date_of_birth, gender, birth_weight_kg,
	created_at, updated_at`

func (r *childRepoPG) scan(row pgx.Row) (*Child, error) {
	var ch Child
	err := row.Scan(&ch.ID, &ch.AccountID, &ch.Name, &ch.DateOfBirth, &ch.Gender,
		&ch.BirthWeight, &ch.CreatedAt, &ch.UpdatedAt)
	return &ch, err
}

func (r *childRepoPG) Create(ctx context.Context, ch *Child) error {
	ch.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO children (id, account_id, name, date_of_birth, gender, birth_weight_kg)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		ch.ID, ch.AccountID, ch.Name, ch.DateOfBirth, ch.Gender, ch.BirthWeight)
	return err
}

func (r *childRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Child, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+childCols+` FROM children WHERE id = $1`, id))
}

func (r *childRepoPG) Update(ctx context.Context, ch *Child) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE children SET name=$2, gender=$3, birth_weight_kg=$4, updated_at=NOW()
		WHERE id = $1`,
		ch.ID, ch.Name, ch.Gender, ch.BirthWeight)
	return err
}

func (r *childRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM children WHERE id = $1`, id)
	return err
}

func (r *childRepoPG) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Child, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM children WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+childCols+` FROM children WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Child
	for rows.Next() {
		ch, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ch)
	}
	return items, total, rows.Err()
}

// =========== Vaccination Record Repository ===========

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository {
	return &recordRepoPG{pool: pool}
}

func (r *recordRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const recordCols = `id, child_id, vaccine_name, dose, scheduled_date, age_label,
	method, purpose, status, administered_date, created_at, updated_at`

func (r *recordRepoPG) scan(row pgx.Row) (*VaccinationRecord, error) {
	var rec VaccinationRecord
	err := row.Scan(&rec.ID, &rec.ChildID, &rec.VaccineName, &rec.Dose,
		&rec.ScheduledDate, &rec.AgeLabel, &rec.Method, &rec.Purpose,
		&rec.Status, &rec.AdministeredDate, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (r *recordRepoPG) CreateBatch(ctx context.Context, records []*VaccinationRecord) error {
	for _, rec := range records {
		rec.ID = uuid.New()
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO vaccination_records (id, child_id, vaccine_name, dose,
				scheduled_date, age_label, method, purpose, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			rec.ID, rec.ChildID, rec.VaccineName, rec.Dose,
			rec.ScheduledDate, rec.AgeLabel, rec.Method, rec.Purpose, rec.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *recordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*VaccinationRecord, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+recordCols+` FROM vaccination_records WHERE id = $1`, id))
}

func (r *recordRepoPG) ListByChild(ctx context.Context, childID uuid.UUID) ([]*VaccinationRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+recordCols+` FROM vaccination_records WHERE child_id = $1 ORDER BY scheduled_date, id`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*VaccinationRecord
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (r *recordRepoPG) Update(ctx context.Context, rec *VaccinationRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE vaccination_records SET status=$2, administered_date=$3, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.Status, rec.AdministeredDate)
	return err
}

func (r *recordRepoPG) DeleteByChild(ctx context.Context, childID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM vaccination_records WHERE child_id = $1`, childID)
	return err
}
