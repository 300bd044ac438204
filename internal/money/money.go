// Package money implements the fixed-point monetary arithmetic used across
// the application: budget usage percentages and their classification,
// savings rates, period-over-period variations, and multi-month trend
// classification. All calculations use shopspring decimals rounded half-up
// at two decimal places so totals never drift the way binary floats do.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	warningThreshold  = decimal.NewFromInt(80)
	criticalThreshold = decimal.NewFromInt(100)

	trendThreshold = decimal.NewFromInt(5)
)

// Round2 rounds a decimal to 2 places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percentage returns how much of budget the spent amount represents, as a
// percentage rounded to 2 decimal places. A zero budget yields zero rather
// than a division error.
func Percentage(spent, budget decimal.Decimal) decimal.Decimal {
	if budget.IsZero() {
		return decimal.Zero
	}
	return spent.Mul(hundred).Div(budget).Round(2)
}

// BudgetUsage classifies how far along a budget is.
type BudgetUsage string

const (
	UsageWithinBudget BudgetUsage = "WITHIN_BUDGET" // < 80%
	UsageNearLimit    BudgetUsage = "NEAR_LIMIT"    // >= 80% and < 100%
	UsageExceeded     BudgetUsage = "EXCEEDED"      // >= 100%
)

// ClassifyUsage maps a usage percentage onto the three budget tiers.
// Both cutoffs are inclusive at the lower bound.
func ClassifyUsage(percentage decimal.Decimal) BudgetUsage {
	switch {
	case percentage.GreaterThanOrEqual(criticalThreshold):
		return UsageExceeded
	case percentage.GreaterThanOrEqual(warningThreshold):
		return UsageNearLimit
	default:
		return UsageWithinBudget
	}
}

// SavingsRate returns the share of income left after expenses, as a
// percentage rounded to 2 decimal places. Zero income yields zero.
func SavingsRate(income, expense decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(expense).Mul(hundred).Div(income).Round(2)
}

// Share returns part as a percentage of total, rounded to 2 decimal places.
// Non-positive totals yield zero.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(2)
}

// Variation describes how a value moved between two periods.
type Variation struct {
	Absolute   decimal.Decimal `json:"absolute"`
	Percentage decimal.Decimal `json:"percentage"`
}

// VariationBetween computes the absolute and percentage change from previous
// to current. Going from zero to any positive value counts as a 100% increase
// rather than a division by zero.
func VariationBetween(previous, current decimal.Decimal) Variation {
	absolute := current.Sub(previous)
	percentage := decimal.Zero
	if !previous.IsZero() {
		percentage = absolute.Mul(hundred).Div(previous).Round(2)
	} else if current.IsPositive() {
		percentage = hundred
	}
	return Variation{Absolute: absolute, Percentage: percentage}
}

// TrendDirection labels which way a metric is moving across a year.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "INCREASING"
	TrendDecreasing TrendDirection = "DECREASING"
	TrendStable     TrendDirection = "STABLE"
)

// Trend is the result of classifying a metric's half-over-half movement.
type Trend struct {
	Direction        TrendDirection  `json:"direction"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	Description      string          `json:"description"`
}

// ClassifyTrend splits an ordered series of monthly values in half, compares
// the two half averages, and labels the direction. Fewer than two values is
// reported as STABLE with an insufficient-data description. Changes within
// ±5% count as stable.
func ClassifyTrend(metric string, values []decimal.Decimal) Trend {
	if len(values) < 2 {
		return Trend{
			Direction:        TrendStable,
			PercentageChange: decimal.Zero,
			Description:      "not enough data to determine a trend",
		}
	}

	mid := len(values) / 2
	firstAvg := average(values[:mid])
	secondAvg := average(values[mid:])

	change := decimal.Zero
	if !firstAvg.IsZero() {
		change = secondAvg.Sub(firstAvg).Mul(hundred).Div(firstAvg).Round(2)
	}

	switch {
	case change.GreaterThan(trendThreshold):
		return Trend{
			Direction:        TrendIncreasing,
			PercentageChange: change,
			Description:      fmt.Sprintf("%s is increasing (%s%%)", metric, change.StringFixed(1)),
		}
	case change.LessThan(trendThreshold.Neg()):
		return Trend{
			Direction:        TrendDecreasing,
			PercentageChange: change,
			Description:      fmt.Sprintf("%s is decreasing (%s%%)", metric, change.Abs().StringFixed(1)),
		}
	default:
		return Trend{
			Direction:        TrendStable,
			PercentageChange: change,
			Description:      fmt.Sprintf("%s is stable", metric),
		}
	}
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2)
}
