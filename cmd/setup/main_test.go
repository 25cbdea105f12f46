package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeEdgeFunction(t *testing.T) {
	var gotPath, gotAuth, gotAPIKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := invokeEdgeFunction(srv.URL, "service-key", "setup-database-rls", map[string]interface{}{
		"sql": "SELECT 1",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp)
	assert.Equal(t, "/functions/v1/setup-database-rls", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotAPIKey)
	assert.Equal(t, "SELECT 1", gotBody["sql"])
}

func TestInvokeEdgeFunctionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := invokeEdgeFunction(srv.URL, "service-key", "setup-database-rls", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
