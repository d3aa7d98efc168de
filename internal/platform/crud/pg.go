package crud

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/db"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
)

// PGTable maps a record type onto one Postgres table.
type PGTable[T any] struct {
	Name string
	// Columns lists the stored columns; the first is the primary key.
	Columns []string
	Scan    func(row pgx.Row) (*T, error)
	// Values returns the column values in Columns order.
	Values func(*T) []interface{}
	// PatientColumn scopes lists by Filter.PatientID. Empty for unscoped tables.
	PatientColumn string
	// SearchColumns are matched case-insensitively against Filter.Search.
	SearchColumns []string
	// Where adds resource specific filters. May be nil.
	Where   func(q *db.SelectQuery, f lookup.Filter)
	OrderBy string
}

func (t PGTable[T]) cols() string { return strings.Join(t.Columns, ", ") }

// PGRepo is a Repository backed by a PGTable.
type PGRepo[T any] struct {
	pool  *pgxpool.Pool
	table PGTable[T]
}

func NewPGRepo[T any](pool *pgxpool.Pool, table PGTable[T]) *PGRepo[T] {
	return &PGRepo[T]{pool: pool, table: table}
}

func (r *PGRepo[T]) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

func (r *PGRepo[T]) Pool() *pgxpool.Pool { return r.pool }

func (r *PGRepo[T]) Create(ctx context.Context, rec *T) error {
	vals := r.table.Values(rec)
	marks := make([]string, len(vals))
	for i := range vals {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.table.Name, r.table.cols(), strings.Join(marks, ", "))
	_, err := r.conn(ctx).Exec(ctx, sql, vals...)
	return db.MapError(err, r.what(vals[0]))
}

func (r *PGRepo[T]) Get(ctx context.Context, id string) (*T, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", r.table.cols(), r.table.Name, r.table.Columns[0])
	rec, err := r.table.Scan(r.conn(ctx).QueryRow(ctx, sql, id))
	if err != nil {
		return nil, db.MapError(err, r.what(id))
	}
	return rec, nil
}

func (r *PGRepo[T]) Update(ctx context.Context, rec *T) error {
	vals := r.table.Values(rec)
	sets := make([]string, 0, len(r.table.Columns))
	for i, c := range r.table.Columns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+2))
	}
	sets = append(sets, "updated_at = NOW()")
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1", r.table.Name, strings.Join(sets, ", "), r.table.Columns[0])
	tag, err := r.conn(ctx).Exec(ctx, sql, vals...)
	if err != nil {
		return db.MapError(err, r.what(vals[0]))
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("%s not found", r.what(vals[0]))
	}
	return nil
}

func (r *PGRepo[T]) Delete(ctx context.Context, id string) error {
	tag, err := r.conn(ctx).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.table.Name, r.table.Columns[0]), id)
	if err != nil {
		return db.MapError(err, r.what(id))
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFound("%s not found", r.what(id))
	}
	return nil
}

// DeleteByPatient removes every row referencing the patient and returns the
// number removed.
func (r *PGRepo[T]) DeleteByPatient(ctx context.Context, patientID string) (int64, error) {
	if r.table.PatientColumn == "" {
		return 0, nil
	}
	tag, err := r.conn(ctx).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.table.Name, r.table.PatientColumn), patientID)
	if err != nil {
		return 0, db.MapError(err, r.table.Name)
	}
	return tag.RowsAffected(), nil
}

func (r *PGRepo[T]) List(ctx context.Context, f lookup.Filter) ([]*T, error) {
	q := r.query(f)
	rows, err := r.conn(ctx).Query(ctx, q.SQL(f.Limit, f.Offset), q.Args(f.Limit, f.Offset)...)
	if err != nil {
		return nil, db.MapError(err, r.table.Name)
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		rec, err := r.table.Scan(rows)
		if err != nil {
			return nil, db.MapError(err, r.table.Name)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns how many rows the filter matches, ignoring paging.
func (r *PGRepo[T]) Count(ctx context.Context, f lookup.Filter) (int, error) {
	q := r.query(f)
	var n int
	if err := r.conn(ctx).QueryRow(ctx, q.CountSQL(), q.CountArgs()...).Scan(&n); err != nil {
		return 0, db.MapError(err, r.table.Name)
	}
	return n, nil
}

func (r *PGRepo[T]) query(f lookup.Filter) *db.SelectQuery {
	q := db.NewSelect(r.table.Name, r.table.cols())
	if r.table.PatientColumn != "" {
		q.Eq(r.table.PatientColumn, f.PatientID)
	}
	q.Contains(f.Search, r.table.SearchColumns...)
	if r.table.Where != nil {
		r.table.Where(q, f)
	}
	order := r.table.OrderBy
	if order == "" {
		order = "created_at, " + r.table.Columns[0]
	}
	q.OrderBy(order)
	return q
}

func (r *PGRepo[T]) what(id interface{}) string {
	return fmt.Sprintf("%s %v", r.table.Name, id)
}
