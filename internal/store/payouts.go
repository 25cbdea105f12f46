package store

import (
	"database/sql"
	"errors"
	"time"

	"referral-platform/internal/models"
)

// Payout statuses.
const (
	PayoutPending   = "pending"
	PayoutCompleted = "completed"
	PayoutFailed    = "failed"
)

const payoutColumns = `id, user_id, date, amount, method, status, reference, paid_at`

func (s *Store) GetPayouts(scope Scope) ([]models.Payout, error) {
	payouts := []models.Payout{}
	var err error
	if scope.All {
		err = s.DB.Select(&payouts, `SELECT `+payoutColumns+` FROM payouts ORDER BY date DESC`)
	} else {
		userID := scope.Referrer
		if userID == "" {
			userID = scope.Business
		}
		err = s.DB.Select(&payouts,
			`SELECT `+payoutColumns+` FROM payouts WHERE user_id = $1 ORDER BY date DESC`, userID)
	}
	return payouts, err
}

// CreatePayout records a pending withdrawal with the given gateway reference.
func (s *Store) CreatePayout(userID string, amount float64, method, reference string) (*models.Payout, error) {
	var payout models.Payout
	err := s.DB.Get(&payout, `
		INSERT INTO payouts (user_id, date, amount, method, status, reference)
		VALUES ($1, $2, $3, $4, 'pending', $5)
		RETURNING `+payoutColumns,
		userID, time.Now().UTC(), amount, method, reference)
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (s *Store) GetPayoutByReference(reference string) (*models.Payout, error) {
	var payout models.Payout
	err := s.DB.Get(&payout, `SELECT `+payoutColumns+` FROM payouts WHERE reference = $1`, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// UpdatePayoutStatus sets the status for a payout by gateway reference,
// stamping paid_at when it completes.
func (s *Store) UpdatePayoutStatus(reference, status string, paidAt *time.Time) (*models.Payout, error) {
	var payout models.Payout
	err := s.DB.Get(&payout, `
		UPDATE payouts SET status = $1, paid_at = $2
		WHERE reference = $3
		RETURNING `+payoutColumns,
		status, paidAt, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// AvailableBalance is the sum of a referrer's paid earnings, the figure the
// earnings screen shows as withdrawable.
func (s *Store) AvailableBalance(referrerID string) (float64, error) {
	var balance float64
	err := s.DB.Get(&balance,
		`SELECT COALESCE(SUM(amount), 0) FROM earnings WHERE referrer_id = $1 AND status = 'paid'`,
		referrerID)
	return balance, err
}
