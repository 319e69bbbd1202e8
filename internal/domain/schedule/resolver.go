package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// ResolveRule looks up the adjustment rule for a (cycle, dateType)
// pair. A missing row falls back to DefaultAdjustmentRule; the
// fallback is deliberate behavior, not an error, but it is logged so
// unconfigured pairs are visible.
func ResolveRule(ctx context.Context, store RuleStore, cycle, dateType string) (string, error) {
	rule, err := store.GetAdjustmentRule(ctx, cycle, dateType)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.Warn("no adjustment rule configured, using default",
			"cycle", cycle, "dateType", dateType, "default", DefaultAdjustmentRule)
		return DefaultAdjustmentRule, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return rule, nil
}
