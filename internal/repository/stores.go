package repository

import (
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewStores wires the Postgres backend.
func NewStores(pool *pgxpool.Pool, logger *zap.Logger) service.Stores {
	return service.Stores{
		Parents:  NewParentRepository(pool, logger),
		Tutors:   NewTutorRepository(pool, logger),
		Requests: NewRequestRepository(pool, logger),
	}
}
