package main

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"referral-platform/internal/config"
	"referral-platform/internal/identity"
	"referral-platform/internal/models"
	"referral-platform/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	switch os.Args[1] {
	case "rls":
		runRLS(cfg)
	case "seed":
		runSeed(cfg)
	case "migrate-users":
		runMigrateUsers(cfg)
	case "check":
		runCheck(cfg)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: setup <command>

commands:
  rls            install row-level security policies via the edge function
  seed           create demo users and sample data
  migrate-users  move legacy user-table rows into the hosted auth service
  check          verify auth reachability and table presence`)
}

// Tables the API can run without. check reports them separately so a partial
// deployment is distinguishable from a broken one.
var requiredTables = []string{"leads", "campaigns", "earnings", "payouts", "payout_methods"}
var optionalTables = []string{"disputes", "activities"}

const rlsPolicySQL = `
ALTER TABLE leads ENABLE ROW LEVEL SECURITY;
ALTER TABLE campaigns ENABLE ROW LEVEL SECURITY;
ALTER TABLE earnings ENABLE ROW LEVEL SECURITY;
ALTER TABLE payouts ENABLE ROW LEVEL SECURITY;
ALTER TABLE payout_methods ENABLE ROW LEVEL SECURITY;

CREATE POLICY leads_referrer_read ON leads
  FOR SELECT USING (referrer_id = auth.uid()::text);
CREATE POLICY campaigns_business_read ON campaigns
  FOR SELECT USING (
    business_id = auth.uid()::text
    OR (auth.jwt() -> 'user_metadata' ->> 'role') = 'referrer'
  );
CREATE POLICY earnings_referrer_read ON earnings
  FOR SELECT USING (referrer_id = auth.uid()::text);
CREATE POLICY payouts_owner_read ON payouts
  FOR SELECT USING (user_id = auth.uid()::text);
CREATE POLICY payout_methods_owner_read ON payout_methods
  FOR SELECT USING (user_id = auth.uid()::text);
`

func runRLS(cfg config.Config) {
	resp, err := invokeEdgeFunction(cfg.SupabaseURL, cfg.SupabaseServiceKey, "setup-database-rls", map[string]interface{}{
		"sql": rlsPolicySQL,
	})
	if err != nil {
		log.Fatal("edge function invocation failed:", err)
	}
	log.Println("RLS policies installed:", resp)
}

// invokeEdgeFunction POSTs a JSON body to a Supabase edge function under
// /functions/v1, authenticated with the service key, and returns the
// response body.
func invokeEdgeFunction(baseURL, serviceKey, name string, body map[string]interface{}) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/functions/v1/"+name, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+serviceKey)
	req.Header.Set("apikey", serviceKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("edge function %s returned %d: %s", name, resp.StatusCode, out)
	}
	return string(out), nil
}

func adminProvider(cfg config.Config) identity.Provider {
	return identity.NewGoTrueProvider(cfg.SupabaseURL, cfg.SupabaseServiceKey)
}

func connect(cfg config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DSN)
	if err != nil {
		log.Fatal("cannot connect to database:", err)
	}
	return db
}

func demoMetadata(firstName, lastName, username, role string) map[string]interface{} {
	return map[string]interface{}{
		"first_name":     firstName,
		"last_name":      lastName,
		"username":       username,
		"role":           role,
		"tier":           "standard",
		"avatar":         nil,
		"created_at":     time.Now().UTC().Format(time.RFC3339),
		"phone":          "",
		"phone_verified": false,
	}
}

func runSeed(cfg config.Config) {
	admin := adminProvider(cfg)
	db := connect(cfg)
	defer db.Close()
	dataStore := store.New(db)

	referrer, err := admin.AdminCreateUser("referrer@demo.local", "demo-password", demoMetadata("Rina", "Referrer", "rina", "referrer"))
	if err != nil {
		log.Fatal("cannot create demo referrer:", err)
	}
	business, err := admin.AdminCreateUser("business@demo.local", "demo-password", demoMetadata("Budi", "Business", "budi", "business"))
	if err != nil {
		log.Fatal("cannot create demo business:", err)
	}
	if _, err := admin.AdminCreateUser("admin@demo.local", "demo-password", demoMetadata("Ade", "Admin", "ade", "admin")); err != nil {
		log.Fatal("cannot create demo admin:", err)
	}

	now := time.Now().UTC()
	campaign, err := dataStore.CreateCampaign(&models.Campaign{
		BusinessID:          &business.ID,
		Name:                "Spring Plumbing Push",
		RewardPerConversion: 50,
		MaxBudget:           1000,
		Status:              store.CampaignActive,
		StartDate:           now.AddDate(0, -1, 0),
		EndDate:             now.AddDate(0, 2, 0),
	})
	if err != nil {
		log.Fatal("cannot seed campaign:", err)
	}

	lead, err := dataStore.CreateLead(&models.Lead{
		ReferrerID:   &referrer.ID,
		CampaignID:   &campaign.ID,
		CustomerName: "Pak Hasan",
		Service:      "Bathroom refit",
		Value:        500,
		Status:       store.LeadCompleted,
	})
	if err != nil {
		log.Fatal("cannot seed lead:", err)
	}

	paidAt := now.AddDate(0, 0, -7)
	paidRef := "PO-seed-0001"
	if _, err := dataStore.CreateEarning(&models.Earning{
		ReferrerID:      &referrer.ID,
		LeadID:          &lead.ID,
		CampaignID:      &campaign.ID,
		Amount:          50,
		Status:          store.EarningPaid,
		PayoutReference: &paidRef,
		PaidAt:          &paidAt,
	}); err != nil {
		log.Fatal("cannot seed paid earning:", err)
	}
	if _, err := dataStore.CreateEarning(&models.Earning{
		ReferrerID: &referrer.ID,
		CampaignID: &campaign.ID,
		Amount:     20,
		Status:     store.EarningPending,
	}); err != nil {
		log.Fatal("cannot seed pending earning:", err)
	}

	if _, err := dataStore.CreatePayout(referrer.ID, 50, "bank_transfer", paidRef); err != nil {
		log.Fatal("cannot seed payout:", err)
	}
	if _, err := dataStore.UpdatePayoutStatus(paidRef, store.PayoutCompleted, &paidAt); err != nil {
		log.Fatal("cannot settle seeded payout:", err)
	}

	log.Println("Seed complete: 3 users, 1 campaign, 1 lead, 2 earnings, 1 payout")
}

// legacyUser mirrors the pre-hosted-auth user table. Password hashes are not
// portable, so migrated accounts get a throwaway password and must reset.
type legacyUser struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Username  string    `db:"username"`
	Role      string    `db:"role"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

func runMigrateUsers(cfg config.Config) {
	admin := adminProvider(cfg)
	db := connect(cfg)
	defer db.Close()

	var legacy []legacyUser
	if err := db.Select(&legacy, `SELECT id, email, first_name, last_name, username, role, phone, created_at FROM "user"`); err != nil {
		log.Fatal("cannot read legacy user table:", err)
	}

	existing, err := admin.AdminListUsers()
	if err != nil {
		log.Fatal("cannot list auth users:", err)
	}
	byEmail := make(map[string]identity.Identity, len(existing))
	for _, u := range existing {
		byEmail[u.Email] = u
	}

	migrated, updated := 0, 0
	for _, lu := range legacy {
		meta := map[string]interface{}{
			"first_name":     lu.FirstName,
			"last_name":      lu.LastName,
			"username":       lu.Username,
			"role":           lu.Role,
			"tier":           "standard",
			"avatar":         nil,
			"created_at":     lu.CreatedAt.UTC().Format(time.RFC3339),
			"phone":          "",
			"phone_verified": false,
			"legacy_id":      lu.ID,
		}
		if lu.Phone != nil {
			meta["phone"] = *lu.Phone
		}

		if found, ok := byEmail[lu.Email]; ok {
			if err := admin.AdminUpdateMetadata(found.ID, meta); err != nil {
				log.Printf("update %s: %v", lu.Email, err)
				continue
			}
			updated++
			continue
		}

		password, err := randomPassword()
		if err != nil {
			log.Fatal("cannot generate password:", err)
		}
		if _, err := admin.AdminCreateUser(lu.Email, password, meta); err != nil {
			log.Printf("create %s: %v", lu.Email, err)
			continue
		}
		migrated++
	}

	log.Printf("Migration complete: %d created, %d updated, %d total legacy rows", migrated, updated, len(legacy))
}

func runCheck(cfg config.Config) {
	healthy := true

	resp, err := http.Get(cfg.SupabaseURL + "/auth/v1/health")
	if err != nil {
		log.Println("auth: UNREACHABLE:", err)
		healthy = false
	} else {
		resp.Body.Close()
		log.Printf("auth: reachable (%d)", resp.StatusCode)
	}

	db, err := sqlx.Connect("pgx", cfg.DSN)
	if err != nil {
		log.Fatal("database: UNREACHABLE:", err)
	}
	defer db.Close()
	log.Println("database: reachable")

	for _, t := range requiredTables {
		if !tableExists(db, t) {
			log.Printf("table %s: MISSING (required)", t)
			healthy = false
			continue
		}
		log.Printf("table %s: present", t)
	}
	for _, t := range optionalTables {
		if !tableExists(db, t) {
			log.Printf("table %s: absent (optional, endpoints degrade)", t)
			continue
		}
		log.Printf("table %s: present", t)
	}

	if !healthy {
		os.Exit(1)
	}
	log.Println("All checks passed")
}

func tableExists(db *sqlx.DB, name string) bool {
	var exists bool
	err := db.Get(&exists, `SELECT EXISTS (SELECT FROM pg_tables WHERE schemaname = 'public' AND tablename = $1)`, name)
	return err == nil && exists
}

func randomPassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
