package db

import (
	"fmt"
	"strings"
)

// SelectQuery builds a parameterized SELECT with AND-joined filters.
type SelectQuery struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

func NewSelect(table, cols string) *SelectQuery {
	return &SelectQuery{table: table, cols: cols, idx: 1}
}

// Idx returns the next available parameter index.
func (q *SelectQuery) Idx() int { return q.idx }

// Add appends a raw WHERE clause fragment (without leading "AND").
func (q *SelectQuery) Add(clause string, args ...interface{}) {
	q.where += " AND " + clause
	q.args = append(q.args, args...)
	q.idx += len(args)
}

// Eq adds column = value. Empty values are ignored.
func (q *SelectQuery) Eq(column, value string) {
	if value == "" {
		return
	}
	q.Add(fmt.Sprintf("%s = $%d", column, q.idx), value)
}

// Contains adds a case-insensitive substring match over any of the columns.
func (q *SelectQuery) Contains(value string, columns ...string) {
	if value == "" || len(columns) == 0 {
		return
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", c, q.idx)
	}
	q.Add("("+strings.Join(parts, " OR ")+")", "%"+escapeLike(value)+"%")
}

func (q *SelectQuery) OrderBy(orderBy string) { q.orderBy = orderBy }

func (q *SelectQuery) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", q.table, q.where)
}

func (q *SelectQuery) CountArgs() []interface{} { return q.args }

// SQL returns the data query. A non-positive limit returns every row.
func (q *SelectQuery) SQL(limit, offset int) string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", q.cols, q.table, q.where)
	if q.orderBy != "" {
		sql += " ORDER BY " + q.orderBy
	}
	idx := q.idx
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", idx)
		idx++
	}
	if offset > 0 {
		sql += fmt.Sprintf(" OFFSET $%d", idx)
	}
	return sql
}

// Args returns the filter arguments followed by limit and offset when set.
func (q *SelectQuery) Args(limit, offset int) []interface{} {
	out := make([]interface{}, len(q.args), len(q.args)+2)
	copy(out, q.args)
	if limit > 0 {
		out = append(out, limit)
	}
	if offset > 0 {
		out = append(out, offset)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
