package identity

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// GoTrueProvider implements Provider against the Supabase GoTrue service.
type GoTrueProvider struct {
	client gotrue.Client
}

// NewGoTrueProvider builds a provider for the given API key. Pass the anon
// key for user flows or the service key for a client that can use the
// Admin* methods.
func NewGoTrueProvider(supabaseURL, apiKey string) *GoTrueProvider {
	client := gotrue.New("platform", apiKey).
		WithCustomGoTrueURL(supabaseURL + "/auth/v1").
		WithToken(apiKey)
	return &GoTrueProvider{client: client}
}

func identityFromUser(u types.User) *Identity {
	return &Identity{
		ID:       u.ID.String(),
		Email:    u.Email,
		Metadata: u.UserMetadata,
	}
}

func (p *GoTrueProvider) SignUp(email, password string, metadata map[string]interface{}) (*Identity, error) {
	resp, err := p.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	})
	if err != nil {
		return nil, err
	}
	return identityFromUser(resp.User), nil
}

func (p *GoTrueProvider) SignUpBare(email, password string) (*Identity, error) {
	resp, err := p.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return identityFromUser(resp.User), nil
}

func (p *GoTrueProvider) SignIn(email, password string) (*Session, error) {
	resp, err := p.client.Token(types.TokenRequest{
		GrantType: "password",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		Identity:     *identityFromUser(resp.User),
	}, nil
}

func (p *GoTrueProvider) SignOut(accessToken string) error {
	return p.client.WithToken(accessToken).Logout()
}

func (p *GoTrueProvider) CurrentUser(accessToken string) (*Identity, error) {
	resp, err := p.client.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, err
	}
	return identityFromUser(resp.User), nil
}

func (p *GoTrueProvider) UpdateMetadata(accessToken string, metadata map[string]interface{}) error {
	_, err := p.client.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{
		Data: metadata,
	})
	return err
}

func (p *GoTrueProvider) AuthorizeURL(provider, redirectTo string) (string, error) {
	resp, err := p.client.Authorize(types.AuthorizeRequest{
		Provider: types.Provider(provider),
	})
	if err != nil {
		return "", err
	}
	return withRedirect(resp.AuthorizationURL, redirectTo), nil
}

// withRedirect appends the redirect_to parameter the auth service reads to
// send the browser back after the provider round trip.
func withRedirect(authorizeURL, redirectTo string) string {
	if redirectTo == "" {
		return authorizeURL
	}
	u, err := url.Parse(authorizeURL)
	if err != nil {
		return authorizeURL
	}
	q := u.Query()
	q.Set("redirect_to", redirectTo)
	u.RawQuery = q.Encode()
	return u.String()
}

func (p *GoTrueProvider) AdminCreateUser(email, password string, metadata map[string]interface{}) (*Identity, error) {
	resp, err := p.client.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        email,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: metadata,
	})
	if err != nil {
		return nil, err
	}
	return identityFromUser(resp.User), nil
}

func (p *GoTrueProvider) AdminListUsers() ([]Identity, error) {
	resp, err := p.client.AdminListUsers()
	if err != nil {
		return nil, err
	}
	users := make([]Identity, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, *identityFromUser(u))
	}
	return users, nil
}

func (p *GoTrueProvider) AdminUpdateMetadata(userID string, metadata map[string]interface{}) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	_, err = p.client.AdminUpdateUser(types.AdminUpdateUserRequest{
		UserID:       id,
		UserMetadata: metadata,
	})
	return err
}

func (p *GoTrueProvider) AdminDeleteUser(userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	return p.client.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: id})
}
