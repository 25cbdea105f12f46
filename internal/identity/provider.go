package identity

// Identity is a user in the hosted auth service. Profile fields live in the
// user-metadata blob, not in an application table.
type Identity struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Session is what a successful credential exchange returns.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	Identity     Identity `json:"identity"`
}

// Provider is the slice of the hosted auth API the platform uses. The
// anon-key client serves end-user flows; a second instance constructed with
// the service key serves the Admin* methods.
type Provider interface {
	// SignUp creates an identity with profile metadata attached atomically.
	SignUp(email, password string, metadata map[string]interface{}) (*Identity, error)
	// SignUpBare creates an identity with credentials only.
	SignUpBare(email, password string) (*Identity, error)
	SignIn(email, password string) (*Session, error)
	SignOut(accessToken string) error
	CurrentUser(accessToken string) (*Identity, error)
	UpdateMetadata(accessToken string, metadata map[string]interface{}) error
	// AuthorizeURL returns the third-party provider URL for the redirect flow.
	AuthorizeURL(provider, redirectTo string) (string, error)

	AdminCreateUser(email, password string, metadata map[string]interface{}) (*Identity, error)
	AdminListUsers() ([]Identity, error)
	AdminUpdateMetadata(userID string, metadata map[string]interface{}) error
	AdminDeleteUser(userID string) error
}
