package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"paysched/internal/domain/payrolls"
)

type fakeRuleStore struct {
	rules map[string]string
	err   error
}

func (f *fakeRuleStore) GetAdjustmentRule(_ context.Context, cycle, dateType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	rule, ok := f.rules[cycle+"/"+dateType]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return rule, nil
}

func TestResolveRuleConfigured(t *testing.T) {
	store := &fakeRuleStore{rules: map[string]string{
		"quarterly/last_day": RuleNextBusinessDay,
	}}
	rule, err := ResolveRule(context.Background(), store, payrolls.CycleQuarterly, payrolls.DateTypeLastDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule != RuleNextBusinessDay {
		t.Fatalf("expected %q, got %q", RuleNextBusinessDay, rule)
	}
}

func TestResolveRuleFallsBackToDefault(t *testing.T) {
	store := &fakeRuleStore{rules: map[string]string{}}
	rule, err := ResolveRule(context.Background(), store, payrolls.CycleWeekly, payrolls.DateTypeDayOfWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule != DefaultAdjustmentRule {
		t.Fatalf("expected default rule %q, got %q", DefaultAdjustmentRule, rule)
	}
}

func TestResolveRuleStoreFailure(t *testing.T) {
	store := &fakeRuleStore{err: errors.New("connection refused")}
	_, err := ResolveRule(context.Background(), store, payrolls.CycleWeekly, payrolls.DateTypeDayOfWeek)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
}
