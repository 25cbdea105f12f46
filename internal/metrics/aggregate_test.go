package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestMonthlySeriesZeroFill(t *testing.T) {
	now := mustParse(t, "2025-06-15T10:00:00Z")

	series := MonthlySeries(nil, nil, now, 6)

	require.Len(t, series, 6)
	assert.Equal(t, "Jan", series[0].Month)
	assert.Equal(t, "Jun", series[5].Month)
	for _, p := range series {
		assert.Equal(t, 2025, p.Year)
		assert.Zero(t, p.Leads)
		assert.Zero(t, p.Conversions)
		assert.Zero(t, p.Earnings)
	}
}

func TestMonthlySeriesBucketsByCreatedAt(t *testing.T) {
	now := mustParse(t, "2025-06-15T10:00:00Z")

	leads := []models.Lead{
		{Status: store.LeadApproved, CreatedAt: mustParse(t, "2025-06-02T00:00:00Z")},
		{Status: store.LeadPending, CreatedAt: mustParse(t, "2025-06-20T00:00:00Z")},
		{Status: store.LeadCompleted, CreatedAt: mustParse(t, "2025-04-01T00:00:00Z")},
		// Outside the window, must be dropped.
		{Status: store.LeadApproved, CreatedAt: mustParse(t, "2024-11-30T23:59:59Z")},
	}
	earnings := []models.Earning{
		{Amount: 50, CreatedAt: mustParse(t, "2025-06-02T00:00:00Z")},
		{Amount: 20, CreatedAt: mustParse(t, "2025-04-10T00:00:00Z")},
		{Amount: 75, CreatedAt: mustParse(t, "2023-06-10T00:00:00Z")},
	}

	series := MonthlySeries(leads, earnings, now, 6)

	require.Len(t, series, 6)
	jun := series[5]
	assert.Equal(t, 2, jun.Leads)
	assert.Equal(t, 1, jun.Conversions)
	assert.Equal(t, 50.0, jun.Earnings)

	apr := series[3]
	assert.Equal(t, "Apr", apr.Month)
	assert.Equal(t, 1, apr.Leads)
	assert.Equal(t, 1, apr.Conversions)
	assert.Equal(t, 20.0, apr.Earnings)

	totalLeads := 0
	for _, p := range series {
		totalLeads += p.Leads
	}
	assert.Equal(t, 3, totalLeads, "out-of-window lead must not be counted anywhere")
}

func TestMonthlySeriesCrossesYearBoundary(t *testing.T) {
	now := mustParse(t, "2025-02-10T00:00:00Z")

	series := MonthlySeries(nil, nil, now, 6)

	require.Len(t, series, 6)
	assert.Equal(t, "Sep", series[0].Month)
	assert.Equal(t, 2024, series[0].Year)
	assert.Equal(t, "Feb", series[5].Month)
	assert.Equal(t, 2025, series[5].Year)
}

func TestSummarizeBalanceSplit(t *testing.T) {
	now := mustParse(t, "2025-06-15T10:00:00Z")
	ref := "r-1"
	paidAt := mustParse(t, "2025-06-03T00:00:00Z")

	earnings := []models.Earning{
		{ReferrerID: &ref, Amount: 50, Status: store.EarningPaid, PaidAt: &paidAt, CreatedAt: mustParse(t, "2025-05-20T00:00:00Z")},
		{ReferrerID: &ref, Amount: 20, Status: store.EarningPending, CreatedAt: mustParse(t, "2025-06-10T00:00:00Z")},
	}

	summary := Summarize(earnings, nil, now, 6)

	assert.Equal(t, 50.0, summary.AvailableBalance, "only paid earnings are withdrawable")
	assert.Equal(t, 20.0, summary.PendingEarnings)
	assert.Equal(t, 70.0, summary.TotalEarned)
	assert.Equal(t, 20.0, summary.ThisMonthEarnings)
}

func TestSummarizePayoutOverlayPrefersPaidAt(t *testing.T) {
	now := mustParse(t, "2025-06-15T10:00:00Z")
	paidAt := mustParse(t, "2025-05-02T00:00:00Z")

	payouts := []models.Payout{
		{Amount: 100, Date: mustParse(t, "2025-04-28T00:00:00Z"), PaidAt: &paidAt},
		{Amount: 30, Date: mustParse(t, "2025-06-01T00:00:00Z")},
	}

	summary := Summarize(nil, payouts, now, 6)

	require.Len(t, summary.Monthly, 6)
	assert.Equal(t, 100.0, summary.Monthly[4].Payouts, "settled payout lands in its paid_at month")
	assert.Equal(t, 30.0, summary.Monthly[5].Payouts, "unsettled payout falls back to its requested date")
}

func TestOverviewStats(t *testing.T) {
	leads := []models.Lead{
		{Status: store.LeadApproved},
		{Status: store.LeadApproved},
		{Status: store.LeadPending},
		{Status: store.LeadRejected},
		{Status: store.LeadCompleted},
		{Status: store.LeadPending},
	}
	campaigns := []models.Campaign{
		{Status: store.CampaignActive},
		{Status: store.CampaignCompleted},
		{Status: store.CampaignActive},
	}
	earnings := []models.Earning{{Amount: 50}, {Amount: 20}}

	stats := Overview(leads, campaigns, earnings, 3)

	assert.Equal(t, 6, stats.TotalReferrals)
	assert.Equal(t, 33.3, stats.ConversionRate)
	assert.Equal(t, 70.0, stats.TotalPayouts)
	assert.Equal(t, 2, stats.ActiveCampaigns)
	assert.Equal(t, 3, stats.PendingDisputes)
}

func TestOverviewEmpty(t *testing.T) {
	stats := Overview(nil, nil, nil, 0)

	assert.Zero(t, stats.TotalReferrals)
	assert.Zero(t, stats.ConversionRate)
}
