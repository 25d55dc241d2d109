package surgery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct {
	db queryable
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{db: pool}
}

const columns = `id, phn, transplant_date, completed_by, record, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO surgery (id, phn, transplant_date, completed_by, record)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		rec.ID, rec.Patient.PHN, rec.Transplant.Date, rec.CompletedBy, body,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM surgery WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE surgery SET phn = $2, transplant_date = $3, completed_by = $4, record = $5, updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.Patient.PHN, rec.Transplant.Date, rec.CompletedBy, body,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM surgery WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM surgery`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+columns+` FROM surgery ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recs, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *repoPG) ListByPHN(ctx context.Context, phn string) ([]*Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+columns+` FROM surgery WHERE phn = $1 ORDER BY created_at DESC`, phn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *repoPG) LatestByPHN(ctx context.Context, phn string) (*Record, error) {
	return r.scan(r.db.QueryRow(ctx,
		`SELECT `+columns+` FROM surgery WHERE phn = $1 ORDER BY created_at DESC LIMIT 1`, phn))
}

func (r *repoPG) ExistsForPHN(ctx context.Context, phn string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM surgery WHERE phn = $1)`, phn).Scan(&exists)
	return exists, err
}

func (r *repoPG) collect(rows pgx.Rows) ([]*Record, error) {
	var recs []*Record
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *repoPG) scan(row pgx.Row) (*Record, error) {
	var (
		id           uuid.UUID
		phn, txDate  string
		completedBy  string
		body         []byte
		raw          map[string]any
		created, upd time.Time
	)
	err := row.Scan(&id, &phn, &txDate, &completedBy, &body, &created, &upd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode surgery record %s: %w", id, err)
	}
	rec := Normalize(raw)
	rec.ID = id
	rec.Patient.PHN = phn
	rec.Transplant.Date = txDate
	rec.CompletedBy = completedBy
	rec.CreatedAt, rec.UpdatedAt = created, upd
	return rec, nil
}
