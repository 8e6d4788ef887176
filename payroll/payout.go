package payroll

import (
	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	PayoutComputed PayoutStatus = "computed"
	PayoutFallback PayoutStatus = "fallback"
)

type FallbackReason string

const (
	ReasonMissingDailySalary FallbackReason = "missing_daily_salary"
	ReasonMissingBonusPayout FallbackReason = "missing_bonus_payout"
	ReasonMissingGrading     FallbackReason = "missing_grading"
)

type PayoutInput struct {
	DailySalary decimal.NullDecimal `json:"daily_salary"`
	BonusPayout decimal.NullDecimal `json:"bonus_payout"`
	Grading     *GradingInfo        `json:"grading"`
}

type Payout struct {
	TotalPercentage  decimal.Decimal `json:"total_percentage"`
	DailyShiftPayout decimal.Decimal `json:"daily_shift_payout"`
	Status           PayoutStatus    `json:"status"`
	Reason           FallbackReason  `json:"reason,omitempty"`
}

var hundred = decimal.NewFromInt(100)

func (in PayoutInput) missing() FallbackReason {
	switch {
	case !in.DailySalary.Valid:
		return ReasonMissingDailySalary
	case !in.BonusPayout.Valid:
		return ReasonMissingBonusPayout
	case in.Grading == nil:
		return ReasonMissingGrading
	}
	return ""
}

// TotalPercentage sums parameterWeight * estimationWeight / 100 over the graded parameters.
// A parameter whose estimation id is unknown contributes nothing.
func TotalPercentage(info GradingInfo) decimal.Decimal {
	total := decimal.Zero
	for _, parameter := range info.Parameters {
		if !parameter.Graded() {
			continue
		}
		estimation, ok := info.findEstimation(*parameter.EstimationID)
		if !ok {
			continue
		}
		weighted := decimal.NewFromFloat(parameter.WeightPercent).Mul(decimal.NewFromFloat(estimation.WeightPercent))
		total = total.Add(weighted.Div(hundred))
	}
	return total
}

// CalculatePayout returns dailySalary + bonusPayout * totalPercentage / 100 rounded to a
// whole amount, half away from zero. When salary, bonus or grading is missing the
// payout falls back to the daily salary (or zero) and the reason is reported.
func CalculatePayout(in PayoutInput) Payout {
	if reason := in.missing(); reason != "" {
		payout := decimal.Zero
		if in.DailySalary.Valid {
			payout = in.DailySalary.Decimal
		}
		return Payout{
			TotalPercentage:  decimal.Zero,
			DailyShiftPayout: payout,
			Status:           PayoutFallback,
			Reason:           reason,
		}
	}
	total := TotalPercentage(*in.Grading)
	bonus := in.BonusPayout.Decimal.Mul(total).Div(hundred)
	return Payout{
		TotalPercentage:  total,
		DailyShiftPayout: in.DailySalary.Decimal.Add(bonus).Round(0),
		Status:           PayoutComputed,
	}
}
