package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"paysched/internal/domain/calendar"
	"paysched/internal/domain/payrolls"
)

type HolidaySource interface {
	HolidaysInRange(ctx context.Context, from, to time.Time, region string) (calendar.Set, error)
}

// Service keeps payroll schedules populated out to the horizon. Each
// call is a pull-to-target reconciliation: it either extends the
// missing tail or, after a configuration change, rebuilds all future
// rows. Writes for one call are a single transaction holding the
// per-payroll advisory lock, so a batch lands whole or not at all and
// at most one generation runs per payroll.
type Service struct {
	store    StoreAPI
	holidays HolidaySource
	now      func() time.Time
}

func NewService(store StoreAPI, holidays HolidaySource) *Service {
	return &Service{store: store, holidays: holidays, now: time.Now}
}

// Horizon is the forward boundary schedules are maintained through:
// two years from today, a single authoritative end date.
func (s *Service) Horizon() time.Time {
	return s.Today().AddDate(DefaultHorizonYears, 0, 0)
}

// Today is the engine's evaluation day, truncated to a calendar date.
func (s *Service) Today() time.Time {
	return truncateToDay(s.now())
}

// EnsureDatesExist makes sure the payroll has generated dates through
// to. If the newest existing row already covers to, this is a no-op;
// otherwise only the missing tail is generated, anchored just after
// the newest existing nominal date so the cycle cadence is preserved.
// Returns the rows with adjusted EFT date on or after from.
func (s *Service) EnsureDatesExist(ctx context.Context, payrollID string, from, to time.Time) ([]PayrollDate, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: target date %s before start %s", ErrGenerationFailed, calendar.DayKey(to), calendar.DayKey(from))
	}
	dates, _, err := s.reconcile(ctx, payrollID, truncateToDay(from), truncateToDay(to), false)
	return dates, err
}

// Recalculate deletes every future row for the payroll and regenerates
// out to the horizon. Used when schedule-relevant configuration
// changes; past rows are never reinterpreted.
func (s *Service) Recalculate(ctx context.Context, payrollID string) ([]PayrollDate, error) {
	dates, _, err := s.reconcile(ctx, payrollID, s.Today(), s.Horizon(), true)
	return dates, err
}

// ExtendAll maintains the rolling horizon for every active payroll.
// Payrolls with a generation already in flight are skipped; other
// failures are recorded and do not stop the sweep.
func (s *Service) ExtendAll(ctx context.Context) (ExtendSummary, error) {
	var summary ExtendSummary

	ids, err := s.store.ListActivePayrollIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	from, to := s.Today(), s.Horizon()
	for _, id := range ids {
		_, generated, err := s.reconcile(ctx, id, from, to, false)
		switch {
		case errors.Is(err, ErrGenerationInFlight):
			slog.Info("horizon extension skipped, generation in flight", "payrollId", id)
			summary.Skipped++
		case err != nil:
			slog.Warn("horizon extension failed", "payrollId", id, "err", err)
			summary.Failed++
		default:
			summary.PayrollsProcessed++
			summary.DatesGenerated += generated
		}
	}
	return summary, nil
}

func (s *Service) reconcile(ctx context.Context, payrollID string, from, to time.Time, deleteFuture bool) ([]PayrollDate, int, error) {
	payroll, err := s.store.GetPayroll(ctx, payrollID)
	if errors.Is(err, payrolls.ErrNotFound) {
		return nil, 0, err
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if err := payrolls.ValidateConfig(payroll); err != nil {
		return nil, 0, err
	}

	rule, err := ResolveRule(ctx, s.store, payroll.Cycle, payroll.DateType)
	if err != nil {
		return nil, 0, err
	}

	// Pad the holiday window so processing dates before the range and
	// adjustment walks past its end stay covered.
	pad := payroll.ProcessingDaysBeforeEFT + maxAdjustmentSteps + 1
	holidays, err := s.holidays.HolidaysInRange(ctx, from.AddDate(0, 0, -pad), to.AddDate(0, 0, maxAdjustmentSteps+1), "")
	if err != nil {
		return nil, 0, err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := s.store.TryPayrollLockTx(ctx, tx, payrollID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if !locked {
		return nil, 0, ErrGenerationInFlight
	}

	if deleteFuture {
		if err := s.store.DeleteDatesFromTx(ctx, tx, payrollID, from); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
	}

	anchor := from
	hasExisting := false
	latest, err := s.store.LatestDateTx(ctx, tx, payrollID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if err == nil {
		hasExisting = true
	}

	if hasExisting && !latest.AdjustedEFTDate.Before(to) {
		// Already populated through the target; idempotent no-op.
		if err := tx.Commit(ctx); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		existing, err := s.store.ListDates(ctx, payrollID, from)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		return existing, 0, nil
	}

	if hasExisting {
		dateValue := 0
		if payroll.DateValue != nil {
			dateValue = *payroll.DateValue
		}
		next, err := NextNominalDate(latest.OriginalEFTDate, payroll.Cycle, payroll.DateType, dateValue)
		if err != nil {
			return nil, 0, err
		}
		anchor = next
	}

	generated, err := Generate(payroll, anchor, Bound{EndDate: to}, rule, holidays)
	if err != nil {
		return nil, 0, err
	}
	if len(generated) > 0 {
		if err := s.store.InsertDatesTx(ctx, tx, generated); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	rows, err := s.store.ListDates(ctx, payrollID, from)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return rows, len(generated), nil
}
