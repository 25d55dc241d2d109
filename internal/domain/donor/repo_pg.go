package donor

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

// queryable abstracts pgxpool.Pool for query execution.
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

// Keyed scalar columns live beside the full record so that listing and
// assignment queries never unmarshal the questionnaire body.
const columns = `id, phn, name, status, recipient_phn, assigned_recipient, record, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *AssessmentRecord) error {
	rec.ID = uuid.New()
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO donor_assessment (id, phn, name, status, recipient_phn, assigned_recipient, record)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		rec.ID, rec.PHN, rec.Name, rec.Status, rec.RecipientPhn, rec.AssignedRecipient, body,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*AssessmentRecord, error) {
	return r.scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM donor_assessment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *AssessmentRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE donor_assessment SET
			phn = $2, name = $3, status = $4, recipient_phn = $5,
			assigned_recipient = $6, record = $7, updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.PHN, rec.Name, rec.Status, rec.RecipientPhn, rec.AssignedRecipient, body,
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
	tag, err := r.db.Exec(ctx, `DELETE FROM donor_assessment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*AssessmentRecord, int, error) {
	query := `SELECT ` + columns + ` FROM donor_assessment`
	countQuery := `SELECT COUNT(*) FROM donor_assessment`
	var args []interface{}

	if status != "" {
		query += ` WHERE status = $1`
		countQuery += ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	idx := len(args) + 1
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
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
		`SELECT `+columns+` FROM donor_assessment WHERE phn = $1 ORDER BY created_at DESC LIMIT 1`, phn))
}

func (r *repoPG) SearchByName(ctx context.Context, name string, limit, offset int) ([]*AssessmentRecord, int, error) {
	var total int
	pattern := "%" + name + "%"
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM donor_assessment WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+columns+` FROM donor_assessment
		WHERE name ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
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

// scan rebuilds a record from its JSONB body, re-normalizing so that rows
// written by older questionnaire revisions still come back fully keyed,
// then overlays the scalar columns which are the source of truth.
func (r *repoPG) scan(row pgx.Row) (*AssessmentRecord, error) {
	var (
		rec  AssessmentRecord
		body []byte
		raw  map[string]any
	)
	err := row.Scan(&rec.ID, &rec.PHN, &rec.Name, &rec.Status, &rec.RecipientPhn,
		&rec.AssignedRecipient, &body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode donor record %s: %w", rec.ID, err)
	}
	full := Normalize(raw)
	full.ID, full.PHN, full.Name = rec.ID, rec.PHN, rec.Name
	full.Status, full.RecipientPhn, full.AssignedRecipient = rec.Status, rec.RecipientPhn, rec.AssignedRecipient
	full.CreatedAt, full.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return full, nil
}
