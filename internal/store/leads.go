package store

import (
	"database/sql"
	"errors"
	"log"

	"referral-platform/internal/models"
)

// Lead statuses.
const (
	LeadPending   = "pending"
	LeadApproved  = "approved"
	LeadRejected  = "rejected"
	LeadCompleted = "completed"
)

// IsConversion reports whether a lead status counts as a conversion.
// "successful" appears in older rows as a synonym for completed.
func IsConversion(status string) bool {
	return status == LeadApproved || status == LeadCompleted || status == "successful"
}

const leadColumns = `id, referrer_id, campaign_id, customer_name, service, value, status, business_name, created_at`

// GetLeads lists leads visible under the scope, newest first.
func (s *Store) GetLeads(scope Scope) ([]models.Lead, error) {
	leads := []models.Lead{}
	var err error
	switch {
	case scope.All:
		err = s.DB.Select(&leads,
			`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	case scope.Business != "":
		err = s.DB.Select(&leads,
			`SELECT `+leadColumns+` FROM leads
			 WHERE campaign_id IN (SELECT id FROM campaigns WHERE business_id = $1)
			 ORDER BY created_at DESC`, scope.Business)
	default:
		err = s.DB.Select(&leads,
			`SELECT `+leadColumns+` FROM leads WHERE referrer_id = $1 ORDER BY created_at DESC`,
			scope.Referrer)
	}
	return leads, err
}

func (s *Store) GetLead(id int) (*models.Lead, error) {
	var lead models.Lead
	err := s.DB.Get(&lead, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// CreateLead inserts a pending lead and, when it targets a campaign, bumps
// that campaign's lead counter.
func (s *Store) CreateLead(lead *models.Lead) (*models.Lead, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if lead.Status == "" {
		lead.Status = LeadPending
	}

	var created models.Lead
	err = tx.Get(&created, `
		INSERT INTO leads (referrer_id, campaign_id, customer_name, service, value, status, business_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+leadColumns,
		lead.ReferrerID, lead.CampaignID, lead.CustomerName, lead.Service,
		lead.Value, lead.Status, lead.BusinessName)
	if err != nil {
		return nil, err
	}

	if created.CampaignID != nil {
		_, err = tx.Exec(`UPDATE campaigns SET leads = leads + 1 WHERE id = $1`, *created.CampaignID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

// LeadPatch is a partial update; nil fields are left unchanged.
type LeadPatch struct {
	CustomerName *string  `json:"customer_name"`
	Service      *string  `json:"service"`
	Value        *float64 `json:"value"`
	Status       *string  `json:"status"`
	BusinessName *string  `json:"business_name"`
	CampaignID   *int     `json:"campaign_id"`
}

// UpdateLead applies a partial update. When the status transitions into a
// converting state for a campaign-linked lead, a pending earning of the
// campaign's reward is created and the campaign counters advance, all inside
// one transaction. Accrual stops when the campaign budget is exhausted; the
// campaign is then marked completed.
func (s *Store) UpdateLead(id int, patch LeadPatch) (*models.Lead, *models.Earning, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var lead models.Lead
	err = tx.Get(&lead, `SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	wasConversion := IsConversion(lead.Status)

	if patch.CustomerName != nil {
		lead.CustomerName = *patch.CustomerName
	}
	if patch.Service != nil {
		lead.Service = *patch.Service
	}
	if patch.Value != nil {
		lead.Value = *patch.Value
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.BusinessName != nil {
		lead.BusinessName = patch.BusinessName
	}
	if patch.CampaignID != nil {
		lead.CampaignID = patch.CampaignID
	}

	_, err = tx.Exec(`
		UPDATE leads
		SET customer_name = $1, service = $2, value = $3, status = $4, business_name = $5, campaign_id = $6
		WHERE id = $7`,
		lead.CustomerName, lead.Service, lead.Value, lead.Status, lead.BusinessName, lead.CampaignID, id)
	if err != nil {
		return nil, nil, err
	}

	var earning *models.Earning
	if !wasConversion && IsConversion(lead.Status) && lead.CampaignID != nil {
		earning, err = accrueEarning(tx, &lead)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &lead, earning, nil
}

// accrueEarning creates the pending earning for a freshly converted lead and
// advances the campaign counters. Returns nil without error when the lead
// already accrued or the campaign budget cannot cover the reward.
func accrueEarning(tx txlike, lead *models.Lead) (*models.Earning, error) {
	var already bool
	err := tx.Get(&already, `SELECT EXISTS (SELECT FROM earnings WHERE lead_id = $1)`, lead.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, nil
	}

	var campaign models.Campaign
	err = tx.Get(&campaign, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, *lead.CampaignID)
	if err != nil {
		return nil, err
	}

	reward := campaign.RewardPerConversion
	if campaign.BudgetUsed+reward > campaign.MaxBudget {
		log.Printf("Campaign %d budget exhausted, no earning accrued for lead %d", campaign.ID, lead.ID)
		_, err = tx.Exec(`UPDATE campaigns SET conversions = conversions + 1, status = $1 WHERE id = $2`,
			CampaignCompleted, campaign.ID)
		return nil, err
	}

	var earning models.Earning
	err = tx.Get(&earning, `
		INSERT INTO earnings (referrer_id, lead_id, campaign_id, amount, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING `+earningColumns,
		lead.ReferrerID, lead.ID, campaign.ID, reward)
	if err != nil {
		return nil, err
	}

	status := campaign.Status
	if campaign.BudgetUsed+reward >= campaign.MaxBudget {
		status = CampaignCompleted
	}
	_, err = tx.Exec(`
		UPDATE campaigns
		SET conversions = conversions + 1, budget_used = budget_used + $1, status = $2
		WHERE id = $3`,
		reward, status, campaign.ID)
	if err != nil {
		return nil, err
	}
	return &earning, nil
}

// txlike is the slice of sqlx.Tx the accrual helper needs.
type txlike interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
}
