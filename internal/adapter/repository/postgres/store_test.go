package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
)

func TestDecimalNumericRoundtrip(t *testing.T) {
	tests := []string{"0", "1", "-1", "100.50", "0.0001", "99999999999.9999"}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			d, err := decimal.NewFromString(s)
			if err != nil {
				t.Fatalf("parse %q: %v", s, err)
			}

			got := numericToDecimal(decimalToNumeric(d))
			if !got.Equal(d) {
				t.Errorf("roundtrip of %s gave %s", d, got)
			}
		})
	}
}

func TestNumericToDecimal_Invalid(t *testing.T) {
	got := numericToDecimal(decimalToNumeric(decimal.Decimal{}))
	if !got.Equal(decimal.Zero) {
		t.Errorf("expected zero for zero value, got %s", got)
	}
}

func TestIsPgError(t *testing.T) {
	lockErr := &pgconn.PgError{Code: pgErrLockNotAvailable}

	if !isPgError(lockErr, pgErrLockNotAvailable) {
		t.Error("expected match on lock_not_available")
	}
	if isPgError(lockErr, pgErrUniqueViolation) {
		t.Error("codes must not cross-match")
	}
	if isPgError(errors.New("plain"), pgErrLockNotAvailable) {
		t.Error("non-pg errors must not match")
	}
	if isPgError(nil, pgErrLockNotAvailable) {
		t.Error("nil must not match")
	}
}

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.err
}

func TestScanBenefit_NoRows(t *testing.T) {
	_, err := scanBenefit(fakeRow{err: pgx.ErrNoRows}, "b1")

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.ID != "b1" {
		t.Errorf("expected id b1, got %s", notFound.ID)
	}
}

func TestScanBenefit_OtherErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")

	_, err := scanBenefit(fakeRow{err: boom}, "b1")
	if !errors.Is(err, boom) {
		t.Errorf("expected original error, got %v", err)
	}
}
