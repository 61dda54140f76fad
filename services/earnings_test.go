package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEarnings(t *testing.T) {
	monthly := float64(AnnualPlanPrice) / 12 // 249

	tests := []struct {
		name       string
		paid       int
		period     EarningsPeriod
		commission int
		milestones int
		total      int
		tier       int
		isVIP      bool
	}{
		{
			name:       "zero referrals",
			paid:       0,
			period:     PeriodMonth,
			commission: 0,
			milestones: 0,
			total:      0,
			tier:       1,
		},
		{
			name:       "below first milestone",
			paid:       9,
			period:     PeriodMonth,
			commission: 448, // 9 * 249 * 0.20 = 448.2
			milestones: 0,
			total:      448,
			tier:       1,
		},
		{
			name:       "first milestone inclusive",
			paid:       10,
			period:     PeriodMonth,
			commission: 498,
			milestones: 500,
			total:      998,
			tier:       1,
		},
		{
			name:       "tier one cap",
			paid:       50,
			period:     PeriodMonth,
			commission: 2490, // 50 * 249 * 0.20
			milestones: 3000, // 4 * 500 + 1000
			total:      5490,
			tier:       1,
		},
		{
			name:       "tier two kicks in past fifty",
			paid:       60,
			period:     PeriodMonth,
			commission: 3237, // 2490 + 10 * 249 * 0.30
			milestones: 3000, // 10 extra referrals, no complete block of 25
			total:      6237,
			tier:       2,
		},
		{
			name:       "block bonus past fifty",
			paid:       75,
			period:     PeriodMonth,
			commission: 4358, // 2490 + 25 * 249 * 0.30 = 4357.5
			milestones: 4000, // 3000 + one complete block of 25
			total:      8358,
			tier:       2,
		},
		{
			name:       "just below vip",
			paid:       199,
			period:     PeriodMonth,
			commission: 13620, // 2490 + 149 * 249 * 0.30 = 13620.3
			milestones: 8000,  // 3000 + 5 blocks of 25
			total:      21620,
			tier:       2,
		},
		{
			name:       "vip threshold inclusive",
			paid:       200,
			period:     PeriodMonth,
			commission: 13695, // 2490 + 150 * 249 * 0.30
			milestones: 14000, // 3000 + 6 blocks + 5000 VIP
			total:      27695,
			tier:       2,
			isVIP:      true,
		},
		{
			name:       "quarter scales commission only",
			paid:       50,
			period:     PeriodQuarter,
			commission: 7470, // 2490 * 3
			milestones: 3000, // one-time, never scaled
			total:      10470,
			tier:       1,
		},
		{
			name:       "year scales commission only",
			paid:       50,
			period:     PeriodYear,
			commission: 29880, // 2490 * 12
			milestones: 3000,
			total:      32880,
			tier:       1,
		},
		{
			name:       "negative input clamps to zero",
			paid:       -5,
			period:     PeriodMonth,
			commission: 0,
			milestones: 0,
			total:      0,
			tier:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEarnings(tt.paid, monthly, tt.period)
			assert.Equal(t, tt.commission, got.Commission, "commission")
			assert.Equal(t, tt.milestones, got.Milestones, "milestones")
			assert.Equal(t, tt.total, got.Total, "total")
			assert.Equal(t, tt.tier, got.Tier, "tier")
			assert.Equal(t, tt.isVIP, got.IsVIP, "vip")
			assert.Equal(t, got.Commission+got.Milestones, got.Total, "total must be commission plus milestones")
		})
	}
}

func TestEstimateEarnings(t *testing.T) {
	t.Run("paid count floors", func(t *testing.T) {
		// 55 invites at 50% convert to 27 paying, not 27.5
		got := EstimateEarnings(55, 50, PeriodMonth)
		assert.Equal(t, 27, got.PaidReferrals)
	})

	t.Run("percent clamps to valid range", func(t *testing.T) {
		got := EstimateEarnings(100, 150, PeriodMonth)
		assert.Equal(t, 100, got.PaidReferrals)

		got = EstimateEarnings(100, -10, PeriodMonth)
		assert.Equal(t, 0, got.PaidReferrals)
		assert.Equal(t, 0, got.Total)
	})

	t.Run("negative invites clamp to zero", func(t *testing.T) {
		got := EstimateEarnings(-10, 50, PeriodMonth)
		assert.Equal(t, 0, got.PaidReferrals)
		assert.Equal(t, 0, got.Total)
	})

	t.Run("matches direct calculation at monthly basis", func(t *testing.T) {
		want := CalculateEarnings(25, float64(AnnualPlanPrice)/12, PeriodQuarter)
		got := EstimateEarnings(50, 50, PeriodQuarter)
		assert.Equal(t, want, got)
	})
}

func TestEarningsPeriodMultiplier(t *testing.T) {
	assert.Equal(t, 1, PeriodMonth.Multiplier())
	assert.Equal(t, 3, PeriodQuarter.Multiplier())
	assert.Equal(t, 12, PeriodYear.Multiplier())
	assert.Equal(t, 1, EarningsPeriod("decade").Multiplier())
}
