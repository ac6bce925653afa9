package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
)

// table is the generic PostgREST access for one record type.
type table[T any] struct {
	client *Client
	name   string
	search []string // text columns for the free-text filter
}

func (t table[T]) insert(ctx context.Context, row *T) error {
	data, err := t.client.Request(ctx, http.MethodPost, t.name, row, "")
	if err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err == nil && len(rows) > 0 {
		*row = rows[0]
	}
	return nil
}

func (t table[T]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	q := url.Values{}
	q.Set("id", "eq."+id.String())
	q.Set("limit", "1")

	rows, err := t.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (t table[T]) list(ctx context.Context, filter model.ListFilter) ([]*T, error) {
	filter = filter.Normalize()

	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", "eq."+filter.Status)
	}
	if or := orFilter(t.search, filter.Query); or != "" {
		q.Set("or", or)
	}
	q.Set("order", "created_at.desc")
	q.Set("limit", strconv.Itoa(filter.Limit))
	q.Set("offset", strconv.Itoa(filter.Offset))

	rows, err := t.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

// patch updates one row by id; an empty representation means no such row.
func (t table[T]) patch(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	q := url.Values{}
	q.Set("id", "eq."+id.String())

	data, err := t.client.Request(ctx, http.MethodPatch, t.name, fields, q.Encode())
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("decode %s update: %w", t.name, err)
	}
	if len(rows) == 0 {
		return model.ErrNotFound
	}
	return nil
}

// counts asks for an exact count per status rather than reading rows, which
// PostgREST caps at its max-rows setting.
func (t table[T]) counts(ctx context.Context, statuses []string) (model.StatusCounts, error) {
	counts := make(model.StatusCounts, len(statuses))
	for _, status := range statuses {
		q := url.Values{}
		q.Set("select", "id")
		q.Set("status", "eq."+status)

		n, err := t.client.Count(ctx, t.name, q.Encode())
		if err != nil {
			return nil, fmt.Errorf("count %s %s: %w", t.name, status, err)
		}
		counts[status] = n
	}
	return counts, nil
}

func (t table[T]) fetch(ctx context.Context, q url.Values) ([]T, error) {
	data, err := t.client.Request(ctx, http.MethodGet, t.name, nil, q.Encode())
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", t.name, err)
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", t.name, err)
	}
	return rows, nil
}

// orFilter builds or=(col.ilike.*q*,...). PostgREST reserved characters are
// dropped from the query rather than quoted.
func orFilter(columns []string, query string) string {
	query = strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')', '"', '*', '\\', ':':
			return -1
		}
		return r
	}, strings.TrimSpace(query))
	if query == "" || len(columns) == 0 {
		return ""
	}
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + ".ilike.*" + query + "*"
	}
	return "(" + strings.Join(parts, ",") + ")"
}
