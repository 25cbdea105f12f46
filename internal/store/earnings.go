package store

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"referral-platform/internal/models"
)

// Earning statuses.
const (
	EarningPending = "pending"
	EarningPaid    = "paid"
)

const earningColumns = `id, referrer_id, lead_id, campaign_id, amount, status, payout_reference, created_at, paid_at`

// GetEarnings lists earnings visible under the scope, newest first.
func (s *Store) GetEarnings(scope Scope) ([]models.Earning, error) {
	earnings := []models.Earning{}
	var err error
	switch {
	case scope.All:
		err = s.DB.Select(&earnings,
			`SELECT `+earningColumns+` FROM earnings ORDER BY created_at DESC`)
	case scope.Business != "":
		err = s.DB.Select(&earnings,
			`SELECT `+earningColumns+` FROM earnings
			 WHERE campaign_id IN (SELECT id FROM campaigns WHERE business_id = $1)
			 ORDER BY created_at DESC`, scope.Business)
	default:
		err = s.DB.Select(&earnings,
			`SELECT `+earningColumns+` FROM earnings WHERE referrer_id = $1 ORDER BY created_at DESC`,
			scope.Referrer)
	}
	return earnings, err
}

func (s *Store) GetEarningsByReferrer(referrerID string) ([]models.Earning, error) {
	earnings := []models.Earning{}
	err := s.DB.Select(&earnings,
		`SELECT `+earningColumns+` FROM earnings WHERE referrer_id = $1 ORDER BY created_at DESC`,
		referrerID)
	return earnings, err
}

// CreateEarning inserts an earning row directly. Normal accrual happens via
// lead conversion; this is used by seeding and admin corrections.
func (s *Store) CreateEarning(earning *models.Earning) (*models.Earning, error) {
	if earning.Status == "" {
		earning.Status = EarningPending
	}
	var created models.Earning
	err := s.DB.Get(&created, `
		INSERT INTO earnings (referrer_id, lead_id, campaign_id, amount, status, payout_reference, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+earningColumns,
		earning.ReferrerID, earning.LeadID, earning.CampaignID,
		earning.Amount, earning.Status, earning.PayoutReference, earning.PaidAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// MarkEarningsPaid moves the oldest pending earnings a payout covers to paid,
// recording the payout reference and timestamp. Earnings whose cumulative
// amount would exceed the payout stay pending for the next withdrawal. The
// reference is mandatory: an earning is never paid without one.
func (s *Store) MarkEarningsPaid(referrerID, payoutReference string, paidAt time.Time, amount float64) (int64, error) {
	if payoutReference == "" {
		return 0, errors.New("payout reference required to mark earnings paid")
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	pending := []models.Earning{}
	err = tx.Select(&pending, `
		SELECT `+earningColumns+` FROM earnings
		WHERE referrer_id = $1 AND status = 'pending'
		ORDER BY created_at, id
		FOR UPDATE`, referrerID)
	if err != nil {
		return 0, err
	}

	ids := earningsCoveredBy(pending, amount)
	if len(ids) == 0 {
		return 0, tx.Commit()
	}

	query, args, err := sqlx.In(`
		UPDATE earnings
		SET status = 'paid', payout_reference = ?, paid_at = ?
		WHERE id IN (?)`, payoutReference, paidAt, ids)
	if err != nil {
		return 0, err
	}
	res, err := tx.Exec(tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// earningsCoveredBy picks, oldest first, the earnings whose cumulative amount
// fits inside the payout amount, and returns their ids.
func earningsCoveredBy(pending []models.Earning, amount float64) []int {
	ids := []int{}
	covered := 0.0
	for _, e := range pending {
		if covered+e.Amount > amount {
			break
		}
		covered += e.Amount
		ids = append(ids, e.ID)
	}
	return ids
}
