package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paysched/internal/domain/payrolls"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetPayroll(ctx context.Context, id string) (payrolls.Payroll, error) {
	var p payrolls.Payroll
	err := s.DB.QueryRow(ctx, `
    SELECT id, client_name, cycle, date_type, date_value, processing_days_before_eft, status, created_at, updated_at
    FROM payrolls
    WHERE id = $1
  `, id).Scan(&p.ID, &p.ClientName, &p.Cycle, &p.DateType, &p.DateValue, &p.ProcessingDaysBeforeEFT, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return payrolls.Payroll{}, payrolls.ErrNotFound
	}
	if err != nil {
		return payrolls.Payroll{}, err
	}
	return p, nil
}

func (s *Store) ListActivePayrollIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT id FROM payrolls WHERE status = $1 ORDER BY created_at", payrolls.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) ListDates(ctx context.Context, payrollID string, from time.Time) ([]PayrollDate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, payroll_id, original_eft_date, adjusted_eft_date, processing_date, COALESCE(notes, ''), created_at
    FROM payroll_dates
    WHERE payroll_id = $1 AND adjusted_eft_date >= $2
    ORDER BY adjusted_eft_date
  `, payrollID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []PayrollDate
	for rows.Next() {
		var d PayrollDate
		if err := rows.Scan(&d.ID, &d.PayrollID, &d.OriginalEFTDate, &d.AdjustedEFTDate, &d.ProcessingDate, &d.Notes, &d.CreatedAt); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (s *Store) GetAdjustmentRule(ctx context.Context, cycle, dateType string) (string, error) {
	var rule string
	err := s.DB.QueryRow(ctx, `
    SELECT rule FROM adjustment_rules WHERE cycle = $1 AND date_type = $2
  `, cycle, dateType).Scan(&rule)
	if err != nil {
		return "", err
	}
	return rule, nil
}

func (s *Store) ListAdjustmentRules(ctx context.Context) ([]AdjustmentRule, error) {
	rows, err := s.DB.Query(ctx, "SELECT cycle, date_type, rule FROM adjustment_rules ORDER BY cycle, date_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []AdjustmentRule
	for rows.Next() {
		var r AdjustmentRule
		if err := rows.Scan(&r.Cycle, &r.DateType, &r.Rule); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.BeginTx(ctx, pgx.TxOptions{})
}

func (s *Store) TryPayrollLockTx(ctx context.Context, tx pgx.Tx, payrollID string) (bool, error) {
	var acquired bool
	err := tx.QueryRow(ctx, "SELECT pg_try_advisory_xact_lock(hashtext($1))", payrollID).Scan(&acquired)
	if err != nil {
		return false, err
	}
	return acquired, nil
}

func (s *Store) LatestDateTx(ctx context.Context, tx pgx.Tx, payrollID string) (PayrollDate, error) {
	var d PayrollDate
	err := tx.QueryRow(ctx, `
    SELECT id, payroll_id, original_eft_date, adjusted_eft_date, processing_date, COALESCE(notes, ''), created_at
    FROM payroll_dates
    WHERE payroll_id = $1
    ORDER BY adjusted_eft_date DESC
    LIMIT 1
  `, payrollID).Scan(&d.ID, &d.PayrollID, &d.OriginalEFTDate, &d.AdjustedEFTDate, &d.ProcessingDate, &d.Notes, &d.CreatedAt)
	if err != nil {
		return PayrollDate{}, err
	}
	return d, nil
}

func (s *Store) InsertDatesTx(ctx context.Context, tx pgx.Tx, dates []PayrollDate) error {
	// The unique index on (payroll_id, adjusted_eft_date) backstops the
	// advisory lock; a conflicting row is a duplicate, never new data.
	for _, d := range dates {
		_, err := tx.Exec(ctx, `
      INSERT INTO payroll_dates (payroll_id, original_eft_date, adjusted_eft_date, processing_date, notes)
      VALUES ($1,$2,$3,$4,NULLIF($5,''))
      ON CONFLICT (payroll_id, adjusted_eft_date) DO NOTHING
    `, d.PayrollID, d.OriginalEFTDate, d.AdjustedEFTDate, d.ProcessingDate, d.Notes)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) DeleteDatesFromTx(ctx context.Context, tx pgx.Tx, payrollID string, from time.Time) error {
	_, err := tx.Exec(ctx, "DELETE FROM payroll_dates WHERE payroll_id = $1 AND adjusted_eft_date >= $2", payrollID, from)
	return err
}
