package schedule

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"paysched/internal/domain/payrolls"
)

type RuleStore interface {
	// GetAdjustmentRule returns pgx.ErrNoRows when no rule row exists
	// for the pair.
	GetAdjustmentRule(ctx context.Context, cycle, dateType string) (string, error)
}

// StoreAPI is the persistence surface of the reconciliation service.
// Generation-critical reads and writes run inside a transaction that
// holds the per-payroll advisory lock; those methods take the open tx.
type StoreAPI interface {
	RuleStore

	GetPayroll(ctx context.Context, id string) (payrolls.Payroll, error)
	ListActivePayrollIDs(ctx context.Context) ([]string, error)
	ListDates(ctx context.Context, payrollID string, from time.Time) ([]PayrollDate, error)
	ListAdjustmentRules(ctx context.Context) ([]AdjustmentRule, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)
	// TryPayrollLockTx acquires the advisory transaction lock for the
	// payroll. Returns false when another generation holds it; the
	// lock releases with the transaction.
	TryPayrollLockTx(ctx context.Context, tx pgx.Tx, payrollID string) (bool, error)
	// LatestDateTx returns the newest generated row for the payroll,
	// or pgx.ErrNoRows when none exist.
	LatestDateTx(ctx context.Context, tx pgx.Tx, payrollID string) (PayrollDate, error)
	InsertDatesTx(ctx context.Context, tx pgx.Tx, dates []PayrollDate) error
	DeleteDatesFromTx(ctx context.Context, tx pgx.Tx, payrollID string, from time.Time) error
}
