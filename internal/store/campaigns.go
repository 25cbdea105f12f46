package store

import (
	"database/sql"
	"errors"
	"time"

	"referral-platform/internal/models"
)

// Campaign statuses.
const (
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

const campaignColumns = `id, business_id, name, description, reward_per_conversion, max_budget,
	budget_used, leads, conversions, status, start_date, end_date,
	service_area, postcode_start, postcode_end, created_at`

// GetCampaigns lists campaigns visible under the scope. Referrers see all
// campaigns (they need them to attach leads); businesses see their own.
func (s *Store) GetCampaigns(scope Scope) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	var err error
	if scope.Business != "" {
		err = s.DB.Select(&campaigns,
			`SELECT `+campaignColumns+` FROM campaigns WHERE business_id = $1 ORDER BY created_at DESC`,
			scope.Business)
	} else {
		err = s.DB.Select(&campaigns,
			`SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
	}
	return campaigns, err
}

func (s *Store) GetCampaign(id int) (*models.Campaign, error) {
	var campaign models.Campaign
	err := s.DB.Get(&campaign, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *Store) CreateCampaign(campaign *models.Campaign) (*models.Campaign, error) {
	if campaign.Status == "" {
		campaign.Status = CampaignActive
	}
	var created models.Campaign
	err := s.DB.Get(&created, `
		INSERT INTO campaigns (business_id, name, description, reward_per_conversion, max_budget,
			status, start_date, end_date, service_area, postcode_start, postcode_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+campaignColumns,
		campaign.BusinessID, campaign.Name, campaign.Description,
		campaign.RewardPerConversion, campaign.MaxBudget, campaign.Status,
		campaign.StartDate, campaign.EndDate, campaign.ServiceArea,
		campaign.PostcodeStart, campaign.PostcodeEnd)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CampaignPatch is a partial update; counters and budget_used are advanced
// by lead conversion, never patched directly.
type CampaignPatch struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status"`
	MaxBudget     *float64   `json:"max_budget"`
	EndDate       *time.Time `json:"end_date"`
	ServiceArea   *string    `json:"service_area"`
	PostcodeStart *string    `json:"postcode_start"`
	PostcodeEnd   *string    `json:"postcode_end"`
}

func (s *Store) UpdateCampaign(id int, patch CampaignPatch) (*models.Campaign, error) {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		campaign.Name = *patch.Name
	}
	if patch.Description != nil {
		campaign.Description = patch.Description
	}
	if patch.Status != nil {
		campaign.Status = *patch.Status
	}
	if patch.MaxBudget != nil {
		campaign.MaxBudget = *patch.MaxBudget
	}
	if patch.EndDate != nil {
		campaign.EndDate = *patch.EndDate
	}
	if patch.ServiceArea != nil {
		campaign.ServiceArea = patch.ServiceArea
	}
	if patch.PostcodeStart != nil {
		campaign.PostcodeStart = patch.PostcodeStart
	}
	if patch.PostcodeEnd != nil {
		campaign.PostcodeEnd = patch.PostcodeEnd
	}

	_, err = s.DB.Exec(`
		UPDATE campaigns
		SET name = $1, description = $2, status = $3, max_budget = $4, end_date = $5,
			service_area = $6, postcode_start = $7, postcode_end = $8
		WHERE id = $9`,
		campaign.Name, campaign.Description, campaign.Status, campaign.MaxBudget,
		campaign.EndDate, campaign.ServiceArea, campaign.PostcodeStart, campaign.PostcodeEnd, id)
	if err != nil {
		return nil, err
	}
	return campaign, nil
}
