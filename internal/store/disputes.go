package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"referral-platform/internal/models"
)

// Dispute statuses and list buckets. A dispute is always in exactly one
// bucket: unresolved statuses in "pending", resolved in "resolved".
const (
	DisputePending   = "pending"
	DisputeEscalated = "escalated"
	DisputeResolved  = "resolved"

	BucketPending  = "pending"
	BucketResolved = "resolved"
	BucketAll      = "all"
)

// BucketStatuses maps a list bucket to the statuses it contains.
func BucketStatuses(bucket string) []string {
	switch bucket {
	case BucketPending:
		return []string{DisputePending, DisputeEscalated}
	case BucketResolved:
		return []string{DisputeResolved}
	default:
		return nil
	}
}

// DisputeBucket classifies a dispute into its list bucket.
func DisputeBucket(d models.Dispute) string {
	if d.Status == DisputeResolved || d.ResolvedAt != nil {
		return BucketResolved
	}
	return BucketPending
}

const disputeColumns = `id, case_id, referrer_id, business_id, admin_id, lead_id,
	business_claim, referrer_response, status, decision, evidence, created_at, resolved_at`

// ListDisputes returns disputes in the given bucket visible under the scope.
func (s *Store) ListDisputes(bucket string, scope Scope) ([]models.Dispute, error) {
	if !s.hasDisputes {
		return nil, ErrNotAvailable
	}

	query := `SELECT ` + disputeColumns + ` FROM disputes`
	args := []interface{}{}
	where := []string{}

	if statuses := BucketStatuses(bucket); statuses != nil {
		where = append(where, `status IN (?)`)
		args = append(args, statuses)
	}
	switch {
	case scope.All:
	case scope.Business != "":
		where = append(where, `business_id = ?`)
		args = append(args, scope.Business)
	default:
		where = append(where, `referrer_id = ?`)
		args = append(args, scope.Referrer)
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}

	disputes := []models.Dispute{}
	err = s.DB.Select(&disputes, s.DB.Rebind(query), inArgs...)
	return disputes, err
}

func (s *Store) GetDispute(id int) (*models.Dispute, error) {
	if !s.hasDisputes {
		return nil, ErrNotAvailable
	}
	var dispute models.Dispute
	err := s.DB.Get(&dispute, `SELECT `+disputeColumns+` FROM disputes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

// CreateDispute opens a case. The case id is assigned here.
func (s *Store) CreateDispute(dispute *models.Dispute) (*models.Dispute, error) {
	if !s.hasDisputes {
		return nil, ErrNotAvailable
	}
	caseID := "DSP-" + uuid.NewString()[:8]
	var created models.Dispute
	err := s.DB.Get(&created, `
		INSERT INTO disputes (case_id, referrer_id, business_id, lead_id, business_claim, referrer_response, status, evidence)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7)
		RETURNING `+disputeColumns,
		caseID, dispute.ReferrerID, dispute.BusinessID, dispute.LeadID,
		dispute.BusinessClaim, dispute.ReferrerResponse, dispute.Evidence)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RespondToDispute records the referrer's side of the case.
func (s *Store) RespondToDispute(id int, response string) (*models.Dispute, error) {
	if !s.hasDisputes {
		return nil, ErrNotAvailable
	}
	var dispute models.Dispute
	err := s.DB.Get(&dispute, `
		UPDATE disputes SET referrer_response = $1 WHERE id = $2 AND resolved_at IS NULL
		RETURNING `+disputeColumns,
		response, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dispute, nil
}

// ResolveDispute records the admin's decision. A dispute resolves exactly
// once; a second attempt returns ErrAlreadyResolved.
func (s *Store) ResolveDispute(id int, adminID, decision string) (*models.Dispute, error) {
	if !s.hasDisputes {
		return nil, ErrNotAvailable
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var dispute models.Dispute
	err = tx.Get(&dispute, `SELECT `+disputeColumns+` FROM disputes WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if dispute.ResolvedAt != nil {
		return nil, ErrAlreadyResolved
	}

	resolvedAt := time.Now().UTC()
	err = tx.Get(&dispute, `
		UPDATE disputes SET status = 'resolved', decision = $1, admin_id = $2, resolved_at = $3
		WHERE id = $4
		RETURNING `+disputeColumns,
		decision, adminID, resolvedAt, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &dispute, nil
}

// PendingDisputeCount feeds the analytics overview with the unresolved cases
// visible under the scope; zero when the table is absent, matching the
// degraded endpoints.
func (s *Store) PendingDisputeCount(scope Scope) (int, error) {
	if !s.hasDisputes {
		return 0, nil
	}
	var count int
	var err error
	switch {
	case scope.All:
		err = s.DB.Get(&count, `SELECT COUNT(*) FROM disputes WHERE resolved_at IS NULL`)
	case scope.Business != "":
		err = s.DB.Get(&count,
			`SELECT COUNT(*) FROM disputes WHERE resolved_at IS NULL AND business_id = $1`,
			scope.Business)
	default:
		err = s.DB.Get(&count,
			`SELECT COUNT(*) FROM disputes WHERE resolved_at IS NULL AND referrer_id = $1`,
			scope.Referrer)
	}
	return count, err
}
