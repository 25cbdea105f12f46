package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Profile roles and tiers.
const (
	RoleReferrer = "referrer"
	RoleBusiness = "business"
	RoleAdmin    = "admin"

	TierStandard = "standard"
	TierPremium  = "premium"
)

// SignupPhase names where a signup got to. The window between
// PhaseIdentityCreated and PhaseComplete is the only place in the system
// where a write can be partially applied.
type SignupPhase string

const (
	PhaseNone            SignupPhase = "none"
	PhaseIdentityCreated SignupPhase = "identity_created" // profile pending
	PhaseComplete        SignupPhase = "complete"
)

// ErrProfilePending reports that the identity exists but the profile fields
// could not be applied. The account is usable; profile must be retried.
var ErrProfilePending = errors.New("identity created but profile not applied")

// fallbackTrigger is the provider failure that makes the combined call
// unusable while a bare signup still works.
const fallbackTrigger = "Database error saving new user"

// SignupParams are the fields collected at registration.
type SignupParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
	Role      string
	Tier      string
	Phone     string
}

// SignupResult reports the identity and the phase the flow finished in.
type SignupResult struct {
	Identity     *Identity   `json:"identity"`
	Phase        SignupPhase `json:"phase"`
	UsedFallback bool        `json:"used_fallback"`
}

// Service wraps the auth provider with the platform's signup and profile
// semantics. anon is an anon-key client, admin a service-key client.
type Service struct {
	anon  Provider
	admin Provider
	now   func() time.Time
}

func NewService(anon, admin Provider) *Service {
	return &Service{anon: anon, admin: admin, now: time.Now}
}

func (p SignupParams) metadata(now time.Time) map[string]interface{} {
	role := p.Role
	if role != RoleBusiness && role != RoleAdmin {
		role = RoleReferrer
	}
	tier := p.Tier
	if tier == "" {
		tier = TierStandard
	}
	return map[string]interface{}{
		"first_name":     p.FirstName,
		"last_name":      p.LastName,
		"username":       p.Username,
		"role":           role,
		"tier":           tier,
		"avatar":         nil,
		"created_at":     now.UTC().Format(time.RFC3339),
		"phone":          p.Phone,
		"phone_verified": false,
	}
}

// SignUp attempts to create the identity with profile metadata in one call.
// When the provider rejects the combined call with the known database error,
// it falls back to a bare signup followed by a metadata update through the
// admin API. Exactly one identity exists after a fallback, and the flow only
// reports PhaseComplete once the metadata is applied.
func (s *Service) SignUp(p SignupParams) (*SignupResult, error) {
	meta := p.metadata(s.now())

	id, err := s.anon.SignUp(p.Email, p.Password, meta)
	if err == nil {
		return &SignupResult{Identity: id, Phase: PhaseComplete}, nil
	}
	if !strings.Contains(err.Error(), fallbackTrigger) {
		return nil, err
	}

	id, err = s.anon.SignUpBare(p.Email, p.Password)
	if err != nil {
		return nil, err
	}
	result := &SignupResult{Identity: id, Phase: PhaseIdentityCreated, UsedFallback: true}

	if err := s.admin.AdminUpdateMetadata(id.ID, meta); err != nil {
		return result, fmt.Errorf("%w: %v", ErrProfilePending, err)
	}
	id.Metadata = meta
	result.Phase = PhaseComplete
	return result, nil
}

func (s *Service) SignIn(email, password string) (*Session, error) {
	return s.anon.SignIn(email, password)
}

func (s *Service) SignOut(accessToken string) error {
	return s.anon.SignOut(accessToken)
}

func (s *Service) Me(accessToken string) (*Identity, error) {
	return s.anon.CurrentUser(accessToken)
}

// UpdateProfile merges the given fields into the caller's metadata.
func (s *Service) UpdateProfile(accessToken string, fields map[string]interface{}) error {
	return s.anon.UpdateMetadata(accessToken, fields)
}

// OAuthURL returns the redirect URL for a third-party identity provider.
func (s *Service) OAuthURL(provider, redirectTo string) (string, error) {
	return s.anon.AuthorizeURL(provider, redirectTo)
}

// Admin surface, used by the operator tool. Service-key client only.

func (s *Service) AdminCreateUser(email, password string, metadata map[string]interface{}) (*Identity, error) {
	return s.admin.AdminCreateUser(email, password, metadata)
}

func (s *Service) AdminListUsers() ([]Identity, error) {
	return s.admin.AdminListUsers()
}

func (s *Service) AdminUpdateMetadata(userID string, metadata map[string]interface{}) error {
	return s.admin.AdminUpdateMetadata(userID, metadata)
}

func (s *Service) AdminDeleteUser(userID string) error {
	return s.admin.AdminDeleteUser(userID)
}
