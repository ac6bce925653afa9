package base

import (
	"testing"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestListQuery_NoFilter(t *testing.T) {
	q, args := ListQuery("SELECT id FROM t", model.ListFilter{}, "name")
	assert.Equal(t, "SELECT id FROM t ORDER BY created_at DESC LIMIT $1 OFFSET $2", q)
	assert.Equal(t, []interface{}{model.DefaultListLimit, 0}, args)
}

func TestListQuery_StatusAndSearch(t *testing.T) {
	q, args := ListQuery("SELECT id FROM t", model.ListFilter{Status: "Pending", Query: "50%_off", Limit: 10, Offset: 20}, "name", "email")
	assert.Equal(t,
		"SELECT id FROM t WHERE status = $1 AND (name ILIKE $2 OR email ILIKE $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4",
		q)
	assert.Equal(t, []interface{}{"pending", `%50\%\_off%`, 10, 20}, args)
}
