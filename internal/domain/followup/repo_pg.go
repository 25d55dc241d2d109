package followup

import (
	"context"
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

func (r *repoPG) Create(ctx context.Context, n *Note) error {
	n.ID = uuid.New()
	return r.db.QueryRow(ctx, `
		INSERT INTO followup_note (id, phn, note_date, note_text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		n.ID, n.PHN, n.Date, n.Text,
	).Scan(&n.CreatedAt)
}

func (r *repoPG) ListByPHN(ctx context.Context, phn string, f Filter) ([]*Note, error) {
	query := `SELECT id, phn, note_date, note_text, created_at FROM followup_note WHERE phn = $1`
	args := []interface{}{phn}
	idx := 2

	if f.Text != "" {
		query += fmt.Sprintf(` AND note_text ILIKE $%d`, idx)
		args = append(args, "%"+f.Text+"%")
		idx++
	}
	if f.From != "" {
		query += fmt.Sprintf(` AND note_date >= $%d`, idx)
		args = append(args, f.From)
		idx++
	}
	if f.To != "" {
		query += fmt.Sprintf(` AND note_date <= $%d`, idx)
		args = append(args, f.To)
		idx++
	}
	query += ` ORDER BY note_date, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.PHN, &n.Date, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}
