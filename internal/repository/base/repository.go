package base

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository holds the query helpers shared by the table repositories.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool returns the underlying connection pool.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// ExecAffected runs a command and returns the number of rows it touched.
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...interface{}) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ExecOne fails with model.ErrNotFound when no row was touched.
func (r *Repository) ExecOne(ctx context.Context, query string, args ...interface{}) error {
	n, err := r.ExecAffected(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// CountByStatus groups a table by its status column.
func (r *Repository) CountByStatus(ctx context.Context, table string) (model.StatusCounts, error) {
	rows, err := r.pool.Query(ctx, "SELECT status, COUNT(*) FROM "+table+" GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(model.StatusCounts)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// IsNotFound reports whether err is pgx.ErrNoRows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// ListQuery appends the WHERE / ORDER / LIMIT part of an admin list view.
// searchExprs are SQL expressions compared with ILIKE against the query.
func ListQuery(selectFrom string, filter model.ListFilter, searchExprs ...string) (string, []interface{}) {
	filter = filter.Normalize()

	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Query != "" && len(searchExprs) > 0 {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		n := len(args)
		ors := make([]string, len(searchExprs))
		for i, expr := range searchExprs {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", expr, n)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	var b strings.Builder
	b.WriteString(selectFrom)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	args = append(args, filter.Limit, filter.Offset)
	fmt.Fprintf(&b, " ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
