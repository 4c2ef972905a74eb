package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type RepoPG struct {
	conn queryable
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{conn: pool}
}

const entryCols = `id, request_id, service, disposition, uti_status, recorded_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.RequestID, &e.Service, &e.Disposition, &e.UTIStatus, &e.RecordedAt)
	return &e, err
}

func (r *RepoPG) Create(ctx context.Context, e *Entry) error {
	q := fmt.Sprintf(`INSERT INTO consultation_audit (%s) VALUES ($1, $2, $3, $4, $5, $6)`, entryCols)
	_, err := r.conn.Exec(ctx, q, e.ID, e.RequestID, e.Service, e.Disposition, e.UTIStatus, e.RecordedAt)
	return err
}

func (r *RepoPG) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM consultation_audit`).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM consultation_audit ORDER BY recorded_at DESC LIMIT $1 OFFSET $2`, entryCols)
	rows, err := r.conn.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
