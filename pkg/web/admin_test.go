package web_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxflow/voxflow/pkg/catalog"
	"github.com/voxflow/voxflow/pkg/conversations"
	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/web"
)

func TestAPIHandlers_GetConversations(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	calls := env.persistence.Calls()
	calls.SeedCall(models.CallRecord{
		ID:              "call-1",
		AccountID:       "acct-1",
		PhoneNumber:     "+15550001111",
		ContactName:     "Dana Reyes",
		Status:          models.CallStatusCompleted,
		Transcript:      "Great, the appointment is booked for Tuesday.",
		DurationSeconds: 95,
		CreatedAt:       time.Now().Add(-1 * time.Hour),
	})
	calls.SeedMessage(models.SMSRecord{
		ID:          "sms-1",
		AccountID:   "acct-1",
		PhoneNumber: "+15550001111",
		Body:        "See you Tuesday!",
		Direction:   models.SMSDirectionOutbound,
		CreatedAt:   time.Now(),
	})
	calls.SeedCall(models.CallRecord{
		ID:          "call-2",
		AccountID:   "acct-2", // other tenant, must not leak
		PhoneNumber: "+15550002222",
		Status:      models.CallStatusCompleted,
		CreatedAt:   time.Now(),
	})

	resp := env.request(t, http.MethodGet, "/conversations", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Conversations []conversations.Conversation `json:"conversations"`
		Total         int                          `json:"total"`
	}](t, resp)

	require.Equal(t, 1, body.Total)
	conv := body.Conversations[0]
	assert.Equal(t, "+15550001111", conv.PhoneNumber)
	assert.Equal(t, "Dana Reyes", conv.ContactName)
	assert.Equal(t, 1, conv.TotalCalls)
	assert.Equal(t, 1, conv.TotalSMS)
	assert.Equal(t, "01:35", conv.TotalDuration)
	assert.Equal(t, 1, conv.Outcomes["Booked Appointment"])
}

func TestAPIHandlers_GetConversation(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	env.persistence.Calls().SeedCall(models.CallRecord{
		ID:          "call-1",
		AccountID:   "acct-1",
		PhoneNumber: "15550001111",
		Status:      models.CallStatusNoAnswer,
		CreatedAt:   time.Now(),
	})

	resp := env.request(t, http.MethodGet, "/conversations/15550001111", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	conv := decodeBody[conversations.Conversation](t, resp)
	assert.Equal(t, 1, conv.TotalCalls)

	resp = env.request(t, http.MethodGet, "/conversations/15559999999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_DeleteUser(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	users := env.persistence.Users()
	users.SeedUser(&models.User{
		ID:        "user-1",
		AccountID: "acct-1",
		Email:     "dana@example.com",
		Name:      "Dana Reyes",
		Role:      models.UserRoleMember,
	})
	users.SeedRelatedRows("contacts", "user-1", 4)
	users.SeedRelatedRows("campaigns", "user-1", 1)

	resp := env.request(t, http.MethodGet, "/admin/users", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeBody[struct {
		Users []models.User `json:"users"`
	}](t, resp)
	require.Len(t, list.Users, 1)

	resp = env.request(t, http.MethodDelete, "/admin/users/user-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[struct {
		Message string `json:"message"`
		Deleted []struct {
			Table string `json:"table"`
			Rows  int64  `json:"rows"`
		} `json:"deleted"`
	}](t, resp)

	assert.Equal(t, "User deleted successfully", result.Message)
	assert.Len(t, result.Deleted, 2)

	resp = env.request(t, http.MethodDelete, "/admin/users/user-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_EndSupportSession(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	env.persistence.SupportSessions().SeedSession("sess-1")

	resp := env.request(t, http.MethodPost, "/admin/support-sessions/sess-1/end", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Ending twice is a 404: the grant is already gone.
	resp = env.request(t, http.MethodPost, "/admin/support-sessions/sess-1/end", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_Whitelabel(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	resp := env.request(t, http.MethodGet, "/whitelabel", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodPut, "/whitelabel", web.UpdateSettingsRequest{
		BrandName: stringPtr("Acme Voice"),
		Slug:      stringPtr("Acme-Voice"),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	settings := decodeBody[models.WebsiteSettings](t, resp)
	assert.Equal(t, "Acme Voice", settings.BrandName)
	assert.Equal(t, "acme-voice", settings.Slug) // lowercased on save

	resp = env.request(t, http.MethodPut, "/whitelabel", web.UpdateSettingsRequest{
		SupportEmail: stringPtr("not-an-email"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/whitelabel/activate", web.ActivateSettingsRequest{Active: true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	settings = decodeBody[models.WebsiteSettings](t, resp)
	assert.True(t, settings.Active)

	resp = env.request(t, http.MethodGet, "/whitelabel/slug-availability?slug=acme-voice", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	check := decodeBody[struct {
		Slug      string `json:"slug"`
		Available bool   `json:"available"`
	}](t, resp)
	assert.True(t, check.Available) // own slug stays available to its owner
}

func TestAPIHandlers_GetConnections(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	env.persistence.Connections().SeedConnection(&models.Connection{
		ID:        "conn-1",
		AccountID: "acct-1",
		Provider:  "facebook",
	})
	env.persistence.Connections().SeedConnection(&models.Connection{
		ID:        "conn-2",
		AccountID: "acct-1",
		Provider:  "hubspot",
	})

	resp := env.request(t, http.MethodGet, "/connections?provider=facebook", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Connections []models.Connection `json:"connections"`
	}](t, resp)
	require.Len(t, body.Connections, 1)
	assert.Equal(t, "conn-1", body.Connections[0].ID)
}

func TestAPIHandlers_GetCatalog(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	resp := env.request(t, http.MethodGet, "/catalog?context=trigger", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Context    string             `json:"context"`
		Categories []catalog.Category `json:"categories"`
	}](t, resp)
	assert.Equal(t, "trigger", body.Context)
	assert.NotEmpty(t, body.Categories)

	resp = env.request(t, http.MethodGet, "/catalog?context=action&q=sms", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body = decodeBody[struct {
		Context    string             `json:"context"`
		Categories []catalog.Category `json:"categories"`
	}](t, resp)
	require.NotEmpty(t, body.Categories)
	assert.Equal(t, "twilio", body.Categories[0].Integrations[0].ID)

	resp = env.request(t, http.MethodGet, "/catalog?context=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_ValidateNodeConfig(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	resp := env.request(t, http.MethodPost, "/catalog/validate", web.ValidateConfigRequest{
		Context:       "trigger",
		IntegrationID: "schedule",
		EntryID:       "schedule",
		Config:        map[string]any{"cron_expression": "0 9 * * 1"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/catalog/validate", web.ValidateConfigRequest{
		Context:       "trigger",
		IntegrationID: "schedule",
		EntryID:       "schedule",
		Config:        map[string]any{"cron_expression": "every tuesday"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/catalog/validate", web.ValidateConfigRequest{
		Context:       "action",
		IntegrationID: "twilio",
		EntryID:       "send_fax",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_FacebookUnconfigured(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	resp := env.request(t, http.MethodGet, "/integrations/facebook/pages", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/integrations/facebook/pages/123/subscribe", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAPIHandlers_GetVariables(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)

	resp := env.request(t, http.MethodGet, "/catalog/variables?trigger_type=facebook_leads", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		TriggerType string `json:"trigger_type"`
		Categories  []struct {
			ID string `json:"id"`
		} `json:"categories"`
	}](t, resp)

	ids := make([]string, 0, len(body.Categories))
	for _, cat := range body.Categories {
		ids = append(ids, cat.ID)
	}

	assert.Contains(t, ids, "facebook_lead")
	assert.NotContains(t, ids, "hubspot_contact")
}
