package facebook

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxflow/voxflow/pkg/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient("test-token", log.WithModule("facebook-test"), WithBaseURL(server.URL))
}

func TestClient_Pages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/accounts", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"p1","name":"Main Page"},{"id":"p2","name":"Side Page"}]}`))
	})

	pages, err := client.Pages(t.Context())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "Main Page", pages[0].Name)
}

func TestClient_LeadForms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p1/leadgen_forms", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"f1","name":"Spring Promo","status":"ACTIVE"}]}`))
	})

	forms, err := client.LeadForms(t.Context(), "p1")
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "Spring Promo", forms[0].Name)
}

func TestClient_Subscribe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/p1/subscribed_apps", r.URL.Path)
		assert.Equal(t, "leadgen", r.URL.Query().Get("subscribed_fields"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, client.Subscribe(t.Context(), "p1"))
}

func TestClient_GraphErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	})

	_, err := client.Pages(t.Context())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid OAuth access token", apiErr.Message)
}
