package models

import (
	"encoding/json"
	"time"
)

// We use 'db' tags for sqlx to map snake_case columns to Go fields. The same
// structs are decoded from PostgREST responses, so every field carries a
// 'json' tag matching the column name.

// Lead is a prospective customer introduced through a referral.
// Status lifecycle: pending -> approved | rejected | completed.
type Lead struct {
	ID           int       `db:"id" json:"id"`
	ReferrerID   *string   `db:"referrer_id" json:"referrer_id"`
	CampaignID   *int      `db:"campaign_id" json:"campaign_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Service      string    `db:"service" json:"service"`
	Value        float64   `db:"value" json:"value"`
	Status       string    `db:"status" json:"status"`
	BusinessName *string   `db:"business_name" json:"business_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Campaign is funded by a business user. budget_used accrues as leads
// convert and is capped at max_budget.
type Campaign struct {
	ID                  int       `db:"id" json:"id"`
	BusinessID          *string   `db:"business_id" json:"business_id"`
	Name                string    `db:"name" json:"name"`
	Description         *string   `db:"description" json:"description"`
	RewardPerConversion float64   `db:"reward_per_conversion" json:"reward_per_conversion"`
	MaxBudget           float64   `db:"max_budget" json:"max_budget"`
	BudgetUsed          float64   `db:"budget_used" json:"budget_used"`
	Leads               int       `db:"leads" json:"leads"`
	Conversions         int       `db:"conversions" json:"conversions"`
	Status              string    `db:"status" json:"status"` // active, paused, completed
	StartDate           time.Time `db:"start_date" json:"start_date"`
	EndDate             time.Time `db:"end_date" json:"end_date"`
	ServiceArea         *string   `db:"service_area" json:"service_area"`
	PostcodeStart       *string   `db:"postcode_start" json:"postcode_start"`
	PostcodeEnd         *string   `db:"postcode_end" json:"postcode_end"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// Earning is a commission credited to a referrer by a qualifying lead.
// Status moves pending -> paid only once a payout reference exists.
type Earning struct {
	ID              int        `db:"id" json:"id"`
	ReferrerID      *string    `db:"referrer_id" json:"referrer_id"`
	LeadID          *int       `db:"lead_id" json:"lead_id"`
	CampaignID      *int       `db:"campaign_id" json:"campaign_id"`
	Amount          float64    `db:"amount" json:"amount"`
	Status          string     `db:"status" json:"status"` // pending, paid
	PayoutReference *string    `db:"payout_reference" json:"payout_reference"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	PaidAt          *time.Time `db:"paid_at" json:"paid_at"`
}

// Payout is a withdrawal of accumulated earnings to an external method.
type Payout struct {
	ID        int        `db:"id" json:"id"`
	UserID    *string    `db:"user_id" json:"user_id"`
	Date      time.Time  `db:"date" json:"date"`
	Amount    float64    `db:"amount" json:"amount"`
	Method    string     `db:"method" json:"method"`
	Status    string     `db:"status" json:"status"` // pending, completed, failed
	Reference *string    `db:"reference" json:"reference"`
	PaidAt    *time.Time `db:"paid_at" json:"paid_at"`
}

// PayoutMethod is a referrer's withdrawal destination. Details is an opaque
// blob whose shape depends on the type (bank_transfer, paypal, ...).
type PayoutMethod struct {
	ID        int             `db:"id" json:"id"`
	UserID    *string         `db:"user_id" json:"user_id"`
	Type      string          `db:"type" json:"type"`
	Details   json.RawMessage `db:"details" json:"details"`
	IsDefault bool            `db:"is_default" json:"is_default"`
}

// BankDetails is the expected shape of a bank_transfer method's details blob.
type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Email         string `json:"email"`
}

// Dispute adjudicates a contested lead. Resolution happens exactly once.
type Dispute struct {
	ID               int             `db:"id" json:"id"`
	CaseID           string          `db:"case_id" json:"case_id"`
	ReferrerID       *string         `db:"referrer_id" json:"referrer_id"`
	BusinessID       *string         `db:"business_id" json:"business_id"`
	AdminID          *string         `db:"admin_id" json:"admin_id"`
	LeadID           *int            `db:"lead_id" json:"lead_id"`
	BusinessClaim    string          `db:"business_claim" json:"business_claim"`
	ReferrerResponse *string         `db:"referrer_response" json:"referrer_response"`
	Status           string          `db:"status" json:"status"` // pending, escalated, resolved
	Decision         *string         `db:"decision" json:"decision"`
	Evidence         json.RawMessage `db:"evidence" json:"evidence"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	ResolvedAt       *time.Time      `db:"resolved_at" json:"resolved_at"`
}

// Activity is an audit/feed entry. The backing table is optional in a
// deployment; writes become no-ops when it is absent.
type Activity struct {
	ID          int             `db:"id" json:"id"`
	UserID      *string         `db:"user_id" json:"user_id"`
	Type        string          `db:"type" json:"type"`
	Title       string          `db:"title" json:"title"`
	Description *string         `db:"description" json:"description"`
	EntityType  *string         `db:"entity_type" json:"entity_type"`
	EntityID    *string         `db:"entity_id" json:"entity_id"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
