package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/hostelcare/internal/db"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	Students     IStudentRepository
	Admins       IAdminRepository
	Hostels      IHostelRepository
	Allocations  IAllocationRepository
	SwapRequests ISwapRequestRepository
	Complaints   IComplaintRepository
	Stats        IStatsRepository
}

// NewRepositories initializes all repositories over one connection or transaction
func NewRepositories(conn DBTX) *Repositories {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return &Repositories{
		Students:     NewStudentRepository(conn, sb),
		Admins:       NewAdminRepository(conn),
		Hostels:      NewHostelRepository(conn, sb),
		Allocations:  NewAllocationRepository(conn),
		SwapRequests: NewSwapRequestRepository(conn, sb),
		Complaints:   NewComplaintRepository(conn, sb),
		Stats:        NewStatsRepository(conn),
	}
}

// TxFn is a unit of work executed against transaction-bound repositories
type TxFn func(ctx context.Context, repos *Repositories) error

// Store hands out repositories and runs units of work atomically
type Store interface {
	Repos() *Repositories
	WithTx(ctx context.Context, fn TxFn) error
	Ping(ctx context.Context) error
}

// PgStore is the PostgreSQL-backed Store
type PgStore struct {
	db    *db.PostgresDB
	repos *Repositories
}

// NewPgStore creates a Store over a connection pool
func NewPgStore(database *db.PostgresDB) *PgStore {
	return &PgStore{
		db:    database,
		repos: NewRepositories(database.Pool),
	}
}

// Repos returns repositories bound to the pool
func (s *PgStore) Repos() *Repositories {
	return s.repos
}

// WithTx runs fn inside one database transaction
func (s *PgStore) WithTx(ctx context.Context, fn TxFn) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// Ping checks the database connection
func (s *PgStore) Ping(ctx context.Context) error {
	return s.db.Pool.Ping(ctx)
}
