package tables

import (
	"encoding/json"

	"github.com/supabase-community/postgrest-go"

	"referral-platform/internal/models"
)

// Client reads rows through the PostgREST API with the caller's own access
// token, so the database's row-level policies decide visibility. This is the
// same path the web client takes; the server never widens it.
type Client struct {
	baseURL string
	anonKey string
}

func New(supabaseURL, anonKey string) *Client {
	return &Client{baseURL: supabaseURL + "/rest/v1", anonKey: anonKey}
}

func (c *Client) rest(accessToken string) *postgrest.Client {
	return postgrest.NewClient(c.baseURL, "public", map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + accessToken,
	})
}

// decode unmarshals a PostgREST response into typed records; loosely shaped
// rows never cross this boundary.
func decode(data []byte, err error, dest interface{}) error {
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *Client) MyLeads(accessToken string) ([]models.Lead, error) {
	data, _, err := c.rest(accessToken).
		From("leads").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	leads := []models.Lead{}
	return leads, decode(data, err, &leads)
}

func (c *Client) MyCampaigns(accessToken string) ([]models.Campaign, error) {
	data, _, err := c.rest(accessToken).
		From("campaigns").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	campaigns := []models.Campaign{}
	return campaigns, decode(data, err, &campaigns)
}

func (c *Client) MyEarnings(accessToken string) ([]models.Earning, error) {
	data, _, err := c.rest(accessToken).
		From("earnings").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	earnings := []models.Earning{}
	return earnings, decode(data, err, &earnings)
}

func (c *Client) MyPayouts(accessToken string) ([]models.Payout, error) {
	data, _, err := c.rest(accessToken).
		From("payouts").
		Select("*", "", false).
		Order("date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	payouts := []models.Payout{}
	return payouts, decode(data, err, &payouts)
}
