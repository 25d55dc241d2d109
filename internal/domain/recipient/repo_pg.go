package recipient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

const columns = `id, phn, name, record, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *AssessmentRecord) error {
	rec.ID = uuid.New()
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO recipient_assessment (id, phn, name, record)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		rec.ID, rec.PHN, rec.Name, body,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return r.scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM recipient_assessment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *AssessmentRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE recipient_assessment SET phn = $2, name = $3, record = $4, updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.PHN, rec.Name, body,
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
	tag, err := r.db.Exec(ctx, `DELETE FROM recipient_assessment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*AssessmentRecord, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recipient_assessment`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+columns+` FROM recipient_assessment ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var recs []*AssessmentRecord
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	return recs, total, rows.Err()
}

func (r *repoPG) LatestByPHN(ctx context.Context, phn string) (*AssessmentRecord, error) {
	return r.scan(r.db.QueryRow(ctx,
		`SELECT `+columns+` FROM recipient_assessment WHERE phn = $1 ORDER BY created_at DESC LIMIT 1`, phn))
}

func (r *repoPG) scan(row pgx.Row) (*AssessmentRecord, error) {
	var (
		rec  AssessmentRecord
		body []byte
		raw  map[string]any
	)
	err := row.Scan(&rec.ID, &rec.PHN, &rec.Name, &body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode recipient record %s: %w", rec.ID, err)
	}
	full := Normalize(raw)
	full.ID, full.PHN, full.Name = rec.ID, rec.PHN, rec.Name
	full.CreatedAt, full.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return full, nil
}
