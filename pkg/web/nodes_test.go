package web_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/web"
)

func createTestWorkflow(t *testing.T, env *testEnv) *models.Workflow {
	t.Helper()

	created, err := env.workflowService.Create(context.Background(), &models.Workflow{
		Name:      "Composer Workflow",
		AccountID: "acct-1",
	})
	require.NoError(t, err)

	return created
}

func TestAPIHandlers_CreateNode(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	workflow := createTestWorkflow(t, env)

	resp := env.request(t, http.MethodPost, "/workflows/"+workflow.ID+"/nodes", web.CreateNodeRequest{
		Context:       "trigger",
		IntegrationID: "facebook",
		EntryID:       "facebook_leads",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	trigger := decodeBody[models.Node](t, resp)
	assert.Equal(t, models.NodeTypeTrigger, trigger.Type)
	assert.NotEmpty(t, trigger.ID)

	// Adding from an existing node wires the connecting edge.
	resp = env.request(t, http.MethodPost, "/workflows/"+workflow.ID+"/nodes", web.CreateNodeRequest{
		Context:       "action",
		IntegrationID: "twilio",
		EntryID:       "send_sms",
		SourceNodeID:  trigger.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	sms := decodeBody[models.Node](t, resp)
	assert.Equal(t, models.NodeTypeTwilioSMS, sms.Type)

	stored, err := env.workflowService.FetchByID(context.Background(), workflow.ID)
	require.NoError(t, err)
	require.Len(t, stored.Nodes, 2)
	require.Len(t, stored.Edges, 1)
	assert.Equal(t, trigger.ID, stored.Edges[0].Source)
	assert.Equal(t, sms.ID, stored.Edges[0].Target)
}

func TestAPIHandlers_CreateNode_Invalid(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	workflow := createTestWorkflow(t, env)

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
	}{
		{
			name: "unknown catalog entry",
			requestBody: web.CreateNodeRequest{
				Context:       "action",
				IntegrationID: "twilio",
				EntryID:       "send_fax",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "context not in enum",
			requestBody: web.CreateNodeRequest{
				Context:       "logic",
				IntegrationID: "builtin",
				EntryID:       "condition",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := env.request(t, http.MethodPost, "/workflows/"+workflow.ID+"/nodes", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAPIHandlers_UpdateNode(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	workflow := createTestWorkflow(t, env)

	_, err := env.workflowService.SaveGraph(context.Background(), workflow.ID, []*models.Node{
		{
			ID:   "sms-1",
			Type: models.NodeTypeTwilioSMS,
			Data: &models.SMSData{Message: "Hello", ToNumber: "{phone_number}"},
		},
	}, nil)
	require.NoError(t, err)

	resp := env.request(t, http.MethodPatch, "/workflows/"+workflow.ID+"/nodes/sms-1", map[string]any{
		"data": map[string]any{"message": "Thanks for reaching out!"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	node := decodeBody[models.Node](t, resp)
	data, ok := node.Data.(*models.SMSData)
	require.True(t, ok)
	assert.Equal(t, "Thanks for reaching out!", data.Message)
	assert.Equal(t, "{phone_number}", data.ToNumber) // untouched by the patch

	resp = env.request(t, http.MethodPatch, "/workflows/"+workflow.ID+"/nodes/missing", map[string]any{
		"data": map[string]any{"message": "x"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_DeleteNode(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	workflow := createTestWorkflow(t, env)

	_, err := env.workflowService.SaveGraph(context.Background(), workflow.ID, []*models.Node{
		{ID: "trigger-1", Type: models.NodeTypeTrigger, Data: &models.TriggerData{TriggerType: "call_ended"}},
		{ID: "wait-1", Type: models.NodeTypeWait, Data: &models.WaitData{Duration: 5, Unit: "minutes"}},
	}, []*models.Edge{
		{ID: "edge-1", Source: "trigger-1", Target: "wait-1"},
	})
	require.NoError(t, err)

	resp := env.request(t, http.MethodDelete, "/workflows/"+workflow.ID+"/nodes/wait-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	stored, err := env.workflowService.FetchByID(context.Background(), workflow.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Nodes, 1)
	assert.Empty(t, stored.Edges) // connected edges go with the node

	resp = env.request(t, http.MethodDelete, "/workflows/"+workflow.ID+"/nodes/wait-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_DuplicateNode(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	workflow := createTestWorkflow(t, env)

	_, err := env.workflowService.SaveGraph(context.Background(), workflow.ID, []*models.Node{
		{
			ID:   "call-1",
			Type: models.NodeTypeCallLead,
			Data: &models.CallLeadData{AssistantID: "asst-9", ToNumber: "{phone_number}"},
		},
	}, nil)
	require.NoError(t, err)

	resp := env.request(t, http.MethodPost, "/workflows/"+workflow.ID+"/nodes/call-1/duplicate", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	clone := decodeBody[models.Node](t, resp)
	assert.NotEqual(t, "call-1", clone.ID)

	data, ok := clone.Data.(*models.CallLeadData)
	require.True(t, ok)
	assert.Equal(t, "asst-9", data.AssistantID)
}

func TestAPIHandlers_CreateAndDeleteEdge(t *testing.T) {
	t.Parallel()

	env := setupTestEnv(t)
	workflow := createTestWorkflow(t, env)

	_, err := env.workflowService.SaveGraph(context.Background(), workflow.ID, []*models.Node{
		{ID: "cond-1", Type: models.NodeTypeCondition, Data: &models.ConditionData{}},
		{ID: "sms-1", Type: models.NodeTypeTwilioSMS, Data: &models.SMSData{}},
	}, nil)
	require.NoError(t, err)

	resp := env.request(t, http.MethodPost, "/workflows/"+workflow.ID+"/edges", web.CreateEdgeRequest{
		Source:    "cond-1",
		Target:    "sms-1",
		Condition: "booked",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	edge := decodeBody[models.Edge](t, resp)
	assert.Equal(t, models.EdgeConditionBooked, edge.Condition())

	// Dangling endpoints are rejected.
	resp = env.request(t, http.MethodPost, "/workflows/"+workflow.ID+"/edges", web.CreateEdgeRequest{
		Source: "cond-1",
		Target: "ghost",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/workflows/"+workflow.ID+"/edges/"+edge.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/workflows/"+workflow.ID+"/edges/"+edge.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
