package metrics

import (
	"math"
	"time"

	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

// MonthlyPoint is one bucket of the performance chart.
type MonthlyPoint struct {
	Month       string  `json:"month"`
	Year        int     `json:"year"`
	Leads       int     `json:"leads"`
	Conversions int     `json:"conversions"`
	Earnings    float64 `json:"earnings"`
}

// monthIndex gives every calendar month a total ordering.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// window builds the trailing n calendar months ending at now, oldest first,
// and an index from monthIndex to slice position.
func window(now time.Time, n int) ([]time.Time, map[int]int) {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]time.Time, n)
	index := make(map[int]int, n)
	for i := 0; i < n; i++ {
		m := anchor.AddDate(0, i-(n-1), 0)
		months[i] = m
		index[monthIndex(m)] = i
	}
	return months, index
}

// MonthlySeries groups leads and earnings into trailing calendar-month
// buckets by created_at. The result is fixed-length and chronological, with
// months that saw no rows present as zeros. Rows outside the window are
// dropped.
func MonthlySeries(leads []models.Lead, earnings []models.Earning, now time.Time, n int) []MonthlyPoint {
	if n <= 0 {
		n = 6
	}
	months, index := window(now, n)

	series := make([]MonthlyPoint, n)
	for i, m := range months {
		series[i] = MonthlyPoint{Month: m.Format("Jan"), Year: m.Year()}
	}

	for _, lead := range leads {
		i, ok := index[monthIndex(lead.CreatedAt)]
		if !ok {
			continue
		}
		series[i].Leads++
		if store.IsConversion(lead.Status) {
			series[i].Conversions++
		}
	}
	for _, earning := range earnings {
		i, ok := index[monthIndex(earning.CreatedAt)]
		if !ok {
			continue
		}
		series[i].Earnings += earning.Amount
	}
	return series
}

// BalancePoint is one bucket of the earnings chart, with the month's payouts
// overlaid.
type BalancePoint struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Earnings float64 `json:"earnings"`
	Pending  float64 `json:"pending"`
	Payouts  float64 `json:"payouts"`
}

// Summary is the referrer's earnings screen in numbers: paid earnings are
// the available balance, pending earnings sit apart and are never counted
// into it.
type Summary struct {
	AvailableBalance  float64        `json:"available_balance"`
	PendingEarnings   float64        `json:"pending_earnings"`
	TotalEarned       float64        `json:"total_earned"`
	ThisMonthEarnings float64        `json:"this_month_earnings"`
	Monthly           []BalancePoint `json:"monthly"`
}

// Summarize folds a referrer's earnings and payout history into the summary.
func Summarize(earnings []models.Earning, payouts []models.Payout, now time.Time, n int) Summary {
	if n <= 0 {
		n = 6
	}
	months, index := window(now, n)

	summary := Summary{Monthly: make([]BalancePoint, n)}
	for i, m := range months {
		summary.Monthly[i] = BalancePoint{Month: m.Format("Jan"), Year: m.Year()}
	}

	nowIdx := monthIndex(now)
	for _, earning := range earnings {
		summary.TotalEarned += earning.Amount
		switch earning.Status {
		case store.EarningPending:
			summary.PendingEarnings += earning.Amount
		case store.EarningPaid:
			summary.AvailableBalance += earning.Amount
		}

		created := monthIndex(earning.CreatedAt)
		if created == nowIdx {
			summary.ThisMonthEarnings += earning.Amount
		}
		if i, ok := index[created]; ok {
			summary.Monthly[i].Earnings += earning.Amount
			if earning.Status == store.EarningPending {
				summary.Monthly[i].Pending += earning.Amount
			}
		}
	}

	for _, payout := range payouts {
		at := payout.Date
		if payout.PaidAt != nil {
			at = *payout.PaidAt
		}
		if i, ok := index[monthIndex(at)]; ok {
			summary.Monthly[i].Payouts += payout.Amount
		}
	}
	return summary
}

// OverviewStats is the admin analytics overview. Field names match the
// legacy JSON contract.
type OverviewStats struct {
	TotalReferrals  int     `json:"totalReferrals"`
	ConversionRate  float64 `json:"conversionRate"`
	TotalPayouts    float64 `json:"totalPayouts"`
	ActiveCampaigns int     `json:"activeCampaigns"`
	PendingDisputes int     `json:"pendingDisputes"`
}

// Overview derives the headline counts and rates. The conversion rate counts
// approved leads only and is rounded to one decimal.
func Overview(leads []models.Lead, campaigns []models.Campaign, earnings []models.Earning, pendingDisputes int) OverviewStats {
	stats := OverviewStats{
		TotalReferrals:  len(leads),
		PendingDisputes: pendingDisputes,
	}

	approved := 0
	for _, lead := range leads {
		if lead.Status == store.LeadApproved {
			approved++
		}
	}
	if stats.TotalReferrals > 0 {
		rate := float64(approved) / float64(stats.TotalReferrals) * 100
		stats.ConversionRate = math.Round(rate*10) / 10
	}

	for _, earning := range earnings {
		stats.TotalPayouts += earning.Amount
	}
	for _, campaign := range campaigns {
		if campaign.Status == store.CampaignActive {
			stats.ActiveCampaigns++
		}
	}
	return stats
}
