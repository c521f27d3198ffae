package pregnancy

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

// =========== Pregnancy Repository ===========

type pregnancyRepoPG struct{ pool *pgxpool.Pool }

func NewPregnancyRepoPG(pool *pgxpool.Pool) PregnancyRepository {
	return &pregnancyRepoPG{pool: pool}
}

func (r *pregnancyRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const pregnancyCols = `id, account_id, lmp, edd, maternal_age, ifas_started,
	tetanus_vaccinated, status, created_at, updated_at`

func (r *pregnancyRepoPG) scan(row pgx.Row) (*Pregnancy, error) {
	var p Pregnancy
	err := row.Scan(&p.ID, &p.AccountID, &p.LMP, &p.EDD, &p.MaternalAge,
		&p.IFASStarted, &p.TetanusVaccinated, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *pregnancyRepoPG) Create(ctx context.Context, p *Pregnancy) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pregnancies (id, account_id, lmp, edd, maternal_age,
			ifas_started, tetanus_vaccinated, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.AccountID, p.LMP, p.EDD, p.MaternalAge,
		p.IFASStarted, p.TetanusVaccinated, p.Status)
	return err
}

func (r *pregnancyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Pregnancy, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+pregnancyCols+` FROM pregnancies WHERE id = $1`, id))
}

func (r *pregnancyRepoPG) GetActiveByAccount(ctx context.Context, accountID uuid.UUID) (*Pregnancy, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT `+pregnancyCols+` FROM pregnancies WHERE account_id = $1 AND status = 'active' ORDER BY created_at DESC LIMIT 1`,
		accountID))
}

func (r *pregnancyRepoPG) Update(ctx context.Context, p *Pregnancy) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE pregnancies SET maternal_age=$2, ifas_started=$3,
			tetanus_vaccinated=$4, status=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.MaternalAge, p.IFASStarted, p.TetanusVaccinated, p.Status)
	return err
}

func (r *pregnancyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM pregnancies WHERE id = $1`, id)
	return err
}

func (r *pregnancyRepoPG) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Pregnancy, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM pregnancies WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+pregnancyCols+` FROM pregnancies WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Pregnancy
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// =========== ANC Visit Repository ===========

type visitRepoPG struct{ pool *pgxpool.Pool }

func NewVisitRepoPG(pool *pgxpool.Pool) VisitRepository {
	return &visitRepoPG{pool: pool}
}

func (r *visitRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const visitCols = `id, pregnancy_id, contact, scheduled_date, age_label,
	purpose, status, attended_date, notes, weight_kg, blood_pressure,
	fundal_height_cm, created_at, updated_at`

func (r *visitRepoPG) scan(row pgx.Row) (*ANCVisit, error) {
	var v ANCVisit
	err := row.Scan(&v.ID, &v.PregnancyID, &v.Contact, &v.ScheduledDate,
		&v.AgeLabel, &v.Purpose, &v.Status, &v.AttendedDate, &v.Notes,
		&v.WeightKg, &v.BloodPressure, &v.FundalHeightCm,
		&v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *visitRepoPG) CreateBatch(ctx context.Context, visits []*ANCVisit) error {
	for _, v := range visits {
		v.ID = uuid.New()
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO anc_visits (id, pregnancy_id, contact, scheduled_date,
				age_label, purpose, status)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			v.ID, v.PregnancyID, v.Contact, v.ScheduledDate,
			v.AgeLabel, v.Purpose, v.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *visitRepoPG) ListByPregnancy(ctx context.Context, pregnancyID uuid.UUID) ([]*ANCVisit, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+visitCols+` FROM anc_visits WHERE pregnancy_id = $1 ORDER BY contact`, pregnancyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ANCVisit
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (r *visitRepoPG) Update(ctx context.Context, v *ANCVisit) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE anc_visits SET status=$2, attended_date=$3, notes=$4,
			weight_kg=$5, blood_pressure=$6, fundal_height_cm=$7, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.Status, v.AttendedDate, v.Notes,
		v.WeightKg, v.BloodPressure, v.FundalHeightCm)
	return err
}

func (r *visitRepoPG) DeleteByPregnancy(ctx context.Context, pregnancyID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM anc_visits WHERE pregnancy_id = $1`, pregnancyID)
	return err
}
