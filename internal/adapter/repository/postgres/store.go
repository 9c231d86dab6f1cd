// Package postgres provides the PostgreSQL-backed BenefitStore. Exclusive
// locking maps to SELECT ... FOR UPDATE under a transaction-local
// lock_timeout; the conditional write is an UPDATE guarded by the version
// the caller read, with the version bump in the same statement.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

// PostgreSQL error codes the store translates into domain errors.
const (
	pgErrLockNotAvailable = "55P03"
	pgErrUniqueViolation  = "23505"
)

const benefitColumns = "id, name, description, amount, active, version, created_at, updated_at"

// Store is a PostgreSQL implementation of usecase.BenefitStore.
type Store struct {
	pool     *pgxpool.Pool
	lockWait time.Duration
}

// NewStore creates a Store. lockWait bounds exclusive lock acquisition;
// zero means usecase.DefaultLockWaitTimeout.
func NewStore(pool *pgxpool.Pool, lockWait time.Duration) *Store {
	if lockWait <= 0 {
		lockWait = usecase.DefaultLockWaitTimeout
	}

	return &Store{pool: pool, lockWait: lockWait}
}

// Create inserts a new benefit. A duplicate name maps to NameTakenError.
func (s *Store) Create(ctx context.Context, benefit *domain.Benefit) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO benefits (`+benefitColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		benefit.ID,
		benefit.Name,
		benefit.Description,
		decimalToNumeric(benefit.Amount),
		benefit.Active,
		benefit.Version,
		benefit.CreatedAt,
		benefit.UpdatedAt,
	)
	if isPgError(err, pgErrUniqueViolation) {
		return &domain.NameTakenError{Name: benefit.Name}
	}

	return err
}

// GetByID retrieves a benefit by ID without locking.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Benefit, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+benefitColumns+` FROM benefits WHERE id = $1`, id)

	return scanBenefit(row, id)
}

// List lists all benefits ordered by ID.
func (s *Store) List(ctx context.Context) ([]*domain.Benefit, error) {
	return s.query(ctx,
		`SELECT `+benefitColumns+` FROM benefits ORDER BY id`)
}

// ListActive lists active benefits ordered by ID.
func (s *Store) ListActive(ctx context.Context) ([]*domain.Benefit, error) {
	return s.query(ctx,
		`SELECT `+benefitColumns+` FROM benefits WHERE active ORDER BY id`)
}

// ExistsByName reports whether another benefit already uses name.
func (s *Store) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM benefits WHERE name = $1 AND id <> $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Begin opens a transaction with the store's lock-wait timeout applied.
func (s *Store) Begin(ctx context.Context) (usecase.StoreSession, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockWait.Milliseconds()))
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	return &session{tx: tx}, nil
}

func (s *Store) query(ctx context.Context, sql string) ([]*domain.Benefit, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var benefits []*domain.Benefit

	for rows.Next() {
		b, err := scanBenefit(rows, "")
		if err != nil {
			return nil, err
		}

		benefits = append(benefits, b)
	}

	return benefits, rows.Err()
}

// session wraps a pgx transaction.
type session struct {
	tx pgx.Tx
}

func (s *session) Get(ctx context.Context, id string, mode usecase.LockMode) (*domain.Benefit, error) {
	sql := `SELECT ` + benefitColumns + ` FROM benefits WHERE id = $1`
	if mode == usecase.LockExclusive {
		sql += ` FOR UPDATE`
	}

	benefit, err := scanBenefit(s.tx.QueryRow(ctx, sql, id), id)
	if isPgError(err, pgErrLockNotAvailable) {
		return nil, domain.ErrLockTimeout
	}

	return benefit, err
}

func (s *session) ConditionalWrite(ctx context.Context, benefit *domain.Benefit) error {
	tag, err := s.tx.Exec(ctx,
		`UPDATE benefits
		 SET name = $2, description = $3, amount = $4, active = $5,
		     version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $6`,
		benefit.ID,
		benefit.Name,
		benefit.Description,
		decimalToNumeric(benefit.Amount),
		benefit.Active,
		benefit.Version,
	)
	if err != nil {
		// A lock_timeout here means the row is held by a concurrent
		// writer; for a version-checked write that is a conflict, not
		// a lock-wait failure.
		if isPgError(err, pgErrLockNotAvailable) {
			return domain.ErrVersionConflict
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM benefits WHERE id = $1)`,
			benefit.ID).Scan(&exists); err != nil {
			return err
		}

		if !exists {
			return &domain.NotFoundError{ID: benefit.ID}
		}

		return domain.ErrVersionConflict
	}

	return nil
}

func (s *session) Commit(ctx context.Context) error {
	return s.tx.Commit(ctx)
}

func (s *session) Rollback(ctx context.Context) error {
	err := s.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBenefit(row rowScanner, id string) (*domain.Benefit, error) {
	var (
		b      domain.Benefit
		amount pgtype.Numeric
	)

	err := row.Scan(&b.ID, &b.Name, &b.Description, &amount, &b.Active,
		&b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}

		return nil, err
	}

	b.Amount = numericToDecimal(amount)

	return &b, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
