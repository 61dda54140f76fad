// services/earnings.go - Affiliate earnings estimation
//
// Commission structure:
//   Tier 1 (1-50 paid referrals):  20% + milestone bonuses (500 at 10/20/30/40, 1000 at 50)
//   Tier 2 (51+):                  30% + 1000 for every complete 25 referrals past 50
//   VIP (200+):                    one-time 5000 bonus
//
// Commission scales with the evaluation period; milestone and VIP
// bonuses are one-time amounts and never scale.
package services

import "math"

// EarningsPeriod selects the evaluation window for an estimate.
type EarningsPeriod string

const (
	PeriodMonth   EarningsPeriod = "month"
	PeriodQuarter EarningsPeriod = "quarter"
	PeriodYear    EarningsPeriod = "year"
)

// Multiplier returns the number of months in the period. Unknown
// periods fall back to a single month.
func (p EarningsPeriod) Multiplier() int {
	switch p {
	case PeriodQuarter:
		return 3
	case PeriodYear:
		return 12
	default:
		return 1
	}
}

// AnnualPlanPrice is the average annual subscription price the
// estimates are based on.
const AnnualPlanPrice = 2988

// EarningsResult is a fully derived earnings estimate. Tier,
// CommissionPercent and IsVIP are explanatory outputs and do not feed
// back into the computation.
type EarningsResult struct {
	PaidReferrals     int  `json:"paid_referrals"`
	Commission        int  `json:"commission"`
	Milestones        int  `json:"milestones"`
	Total             int  `json:"total"`
	Tier              int  `json:"tier"`
	CommissionPercent int  `json:"commission_percent"`
	IsVIP             bool `json:"is_vip"`
	Multiplier        int  `json:"multiplier"`
}

// CalculateEarnings computes the tiered commission plus one-time
// bonuses for a number of paying referrals at a given monthly revenue
// basis. Pure and total: defined for all inputs, touches no state.
func CalculateEarnings(paidReferrals int, monthlyPayment float64, period EarningsPeriod) EarningsResult {
	if paidReferrals < 0 {
		paidReferrals = 0
	}

	// Tier 1: first 50 referrals at 20%
	tier1 := paidReferrals
	if tier1 > 50 {
		tier1 = 50
	}
	commission := float64(tier1) * monthlyPayment * 0.20

	// Tier 2: referrals past 50 at 30%
	if paidReferrals > 50 {
		commission += float64(paidReferrals-50) * monthlyPayment * 0.30
	}

	// Milestone bonuses are cumulative and one-time; all thresholds
	// inclusive.
	milestones := 0
	for _, threshold := range []int{10, 20, 30, 40} {
		if paidReferrals >= threshold {
			milestones += 500
		}
	}
	if paidReferrals >= 50 {
		milestones += 1000
	}
	if paidReferrals > 50 {
		milestones += (paidReferrals - 50) / 25 * 1000
	}
	if paidReferrals >= 200 {
		milestones += 5000
	}

	multiplier := period.Multiplier()
	monthlyCommission := int(math.Round(commission))
	scaled := monthlyCommission * multiplier

	tier := 1
	percent := 20
	if paidReferrals > 50 {
		tier = 2
		percent = 30
	}

	return EarningsResult{
		PaidReferrals:     paidReferrals,
		Commission:        scaled,
		Milestones:        milestones,
		Total:             scaled + milestones,
		Tier:              tier,
		CommissionPercent: percent,
		IsVIP:             paidReferrals >= 200,
		Multiplier:        multiplier,
	}
}

// EstimateEarnings previews earnings from a total invite count and the
// percentage assumed to convert to paying subscribers. The revenue
// basis is the annual plan price spread over 12 months.
func EstimateEarnings(referralCount, payingPercent int, period EarningsPeriod) EarningsResult {
	if referralCount < 0 {
		referralCount = 0
	}
	if payingPercent < 0 {
		payingPercent = 0
	}
	if payingPercent > 100 {
		payingPercent = 100
	}

	paid := referralCount * payingPercent / 100
	monthlyPayment := float64(AnnualPlanPrice) / 12

	return CalculateEarnings(paid, monthlyPayment, period)
}
