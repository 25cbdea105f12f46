package identity

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRedirect(t *testing.T) {
	authorize := "https://proj.supabase.co/auth/v1/authorize?provider=google"

	t.Run("appends redirect_to", func(t *testing.T) {
		got := withRedirect(authorize, "https://app.example.com/dash")

		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "google", u.Query().Get("provider"))
		assert.Equal(t, "https://app.example.com/dash", u.Query().Get("redirect_to"))
	})

	t.Run("no redirect leaves URL untouched", func(t *testing.T) {
		assert.Equal(t, authorize, withRedirect(authorize, ""))
	})

	t.Run("unparseable URL passes through", func(t *testing.T) {
		assert.Equal(t, "://bad", withRedirect("://bad", "https://app.example.com"))
	})
}
