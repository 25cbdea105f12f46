package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"referral-platform/internal/models"
)

const payoutMethodColumns = `id, user_id, type, details, is_default`

func (s *Store) GetPayoutMethods(userID string) ([]models.PayoutMethod, error) {
	methods := []models.PayoutMethod{}
	err := s.DB.Select(&methods,
		`SELECT `+payoutMethodColumns+` FROM payout_methods WHERE user_id = $1 ORDER BY is_default DESC, id`,
		userID)
	return methods, err
}

// DefaultPayoutMethod returns the user's default withdrawal destination.
func (s *Store) DefaultPayoutMethod(userID string) (*models.PayoutMethod, error) {
	var method models.PayoutMethod
	err := s.DB.Get(&method,
		`SELECT `+payoutMethodColumns+` FROM payout_methods WHERE user_id = $1 AND is_default ORDER BY id LIMIT 1`,
		userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// CreatePayoutMethod stores a withdrawal destination. The user's first
// method becomes the default automatically.
func (s *Store) CreatePayoutMethod(userID, methodType string, details json.RawMessage) (*models.PayoutMethod, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.Get(&count, `SELECT COUNT(*) FROM payout_methods WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	var method models.PayoutMethod
	err = tx.Get(&method, `
		INSERT INTO payout_methods (user_id, type, details, is_default)
		VALUES ($1, $2, $3, $4)
		RETURNING `+payoutMethodColumns,
		userID, methodType, details, count == 0)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &method, nil
}

// SetDefaultPayoutMethod makes the given method the user's default.
func (s *Store) SetDefaultPayoutMethod(userID string, id int) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE payout_methods SET is_default = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(`UPDATE payout_methods SET is_default = false WHERE user_id = $1 AND id <> $2`, userID, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeletePayoutMethod(userID string, id int) error {
	res, err := s.DB.Exec(`DELETE FROM payout_methods WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
