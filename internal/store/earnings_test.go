package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"referral-platform/internal/models"
)

func pendingEarnings(amounts ...float64) []models.Earning {
	out := make([]models.Earning, len(amounts))
	for i, a := range amounts {
		out[i] = models.Earning{ID: i + 1, Amount: a, Status: EarningPending}
	}
	return out
}

func TestEarningsCoveredByStopsAtPayoutAmount(t *testing.T) {
	// 50 + 20 fits in a 75 payout; adding the 30 would exceed it.
	pending := pendingEarnings(50, 20, 30)
	assert.Equal(t, []int{1, 2}, earningsCoveredBy(pending, 75))
}

func TestEarningsCoveredByExactAmount(t *testing.T) {
	pending := pendingEarnings(50, 20, 30)
	assert.Equal(t, []int{1, 2, 3}, earningsCoveredBy(pending, 100))
}

func TestEarningsCoveredByFirstTooLarge(t *testing.T) {
	pending := pendingEarnings(50, 20)
	assert.Empty(t, earningsCoveredBy(pending, 40))
}

func TestEarningsCoveredByNoPending(t *testing.T) {
	assert.Empty(t, earningsCoveredBy(nil, 100))
}
