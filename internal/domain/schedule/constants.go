package schedule

const (
	RulePreviousBusinessDay = "previous"
	RuleNextBusinessDay     = "next"
	RuleNoAdjustment        = "none"

	// DefaultAdjustmentRule applies when no rule row exists for a
	// (cycle, dateType) pair. The fallback is logged when taken.
	DefaultAdjustmentRule = RulePreviousBusinessDay

	// DefaultHorizonYears is how far past today schedules are kept
	// populated by Recalculate and ExtendAll.
	DefaultHorizonYears = 2

	// maxAdjustmentSteps bounds the business-day walk. A nominal date
	// more than ten days from the nearest business day means the
	// holiday data is degenerate.
	maxAdjustmentSteps = 10
)
