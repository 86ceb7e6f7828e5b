package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxflow/voxflow/pkg/models"
)

func routerWorkflow() *models.Workflow {
	return &models.Workflow{
		ID: "wf-r",
		Nodes: []*models.Node{
			{ID: "router-1", Type: models.NodeTypeRouter, Data: &models.RouterData{Branches: []models.RouterBranch{
				{ID: "b0", Label: "Booked"},
				{ID: "b1", Label: "Otherwise"},
				{ID: "b2", Label: "Voicemail"},
			}}},
			{ID: "sms-1", Type: models.NodeTypeTwilioSMS, Data: &models.SMSData{}},
			{ID: "sms-2", Type: models.NodeTypeTwilioSMS, Data: &models.SMSData{}},
			{ID: "cond-1", Type: models.NodeTypeCondition, Data: &models.ConditionData{}},
			{ID: "trig-1", Type: models.NodeTypeTrigger, Data: &models.TriggerData{
				CoreVariables: []models.CoreVariable{{Key: "name"}, {Key: "phone_number"}},
			}},
		},
		Edges: []*models.Edge{
			{ID: "e0", Source: "router-1", SourceHandle: "branch-0", Target: "sms-1"},
			{ID: "e2", Source: "router-1", SourceHandle: "branch-2", Target: "sms-2"},
		},
	}
}

func TestComposer_ConditionRows(t *testing.T) {
	t.Parallel()

	c := New(routerWorkflow())

	require.NoError(t, c.AddConditionRow("cond-1"))
	require.NoError(t, c.AddConditionRow("cond-1"))

	row := models.ConditionRow{Variable: "appointment.status", Operator: models.OperatorEquals, Value: "booked"}
	require.NoError(t, c.UpdateConditionRow("cond-1", 1, row))

	data, _ := c.Workflow().Node("cond-1").Data.(*models.ConditionData)
	require.Len(t, data.Conditions, 2)
	assert.Equal(t, row, data.Conditions[1])

	require.NoError(t, c.RemoveConditionRow("cond-1", 0))
	data, _ = c.Workflow().Node("cond-1").Data.(*models.ConditionData)
	require.Len(t, data.Conditions, 1)
	assert.Equal(t, row, data.Conditions[0])

	assert.ErrorIs(t, c.UpdateConditionRow("cond-1", 5, row), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.AddConditionRow("sms-1"), ErrWrongNodeKind)
}

func TestComposer_Branches(t *testing.T) {
	t.Parallel()

	c := New(routerWorkflow())

	branch, err := c.AddBranch("router-1", "No Answer")
	require.NoError(t, err)
	assert.NotEmpty(t, branch.ID)

	data, _ := c.Workflow().Node("router-1").Data.(*models.RouterData)
	require.Len(t, data.Branches, 4)

	update := models.RouterBranch{
		Label:     "No Answer",
		Condition: models.BranchCondition{Variable: "call.status", Operator: models.OperatorEquals, Value: "no-answer"},
	}
	require.NoError(t, c.UpdateBranch("router-1", 3, update))

	data, _ = c.Workflow().Node("router-1").Data.(*models.RouterData)
	assert.Equal(t, branch.ID, data.Branches[3].ID, "id survives update")
	assert.Equal(t, "call.status", data.Branches[3].Condition.Variable)

	_, err = c.AddBranch("sms-1", "nope")
	assert.ErrorIs(t, err, ErrWrongNodeKind)
}

func TestComposer_RemoveBranch_ShiftsHandles(t *testing.T) {
	t.Parallel()

	c := New(routerWorkflow())

	// Removing branch 0 drops its edge and shifts branch-2's edge to branch-1.
	require.NoError(t, c.RemoveBranch("router-1", 0))

	data, _ := c.Workflow().Node("router-1").Data.(*models.RouterData)
	require.Len(t, data.Branches, 2)
	assert.Equal(t, "Otherwise", data.Branches[0].Label)

	require.Len(t, c.Workflow().Edges, 1)
	assert.Equal(t, "e2", c.Workflow().Edges[0].ID)
	assert.Equal(t, "branch-1", c.Workflow().Edges[0].SourceHandle)

	assert.ErrorIs(t, c.RemoveBranch("router-1", 9), ErrIndexOutOfRange)
}

func TestComposer_ExpectedVariables(t *testing.T) {
	t.Parallel()

	c := New(routerWorkflow())

	require.NoError(t, c.AddExpectedVariable("trig-1", "utm_source"))
	require.NoError(t, c.AddExpectedVariable("trig-1", "utm_source")) // duplicate ignored
	require.NoError(t, c.AddExpectedVariable("trig-1", ""))           // empty ignored

	data, _ := c.Workflow().Node("trig-1").Data.(*models.TriggerData)
	assert.Equal(t, []string{"utm_source"}, data.ExpectedVariables)

	require.NoError(t, c.RemoveExpectedVariable("trig-1", "utm_source"))
	data, _ = c.Workflow().Node("trig-1").Data.(*models.TriggerData)
	assert.Empty(t, data.ExpectedVariables)
}

func TestComposer_CoreVariableHideRestore(t *testing.T) {
	t.Parallel()

	c := New(routerWorkflow())

	require.NoError(t, c.SetCoreVariableHidden("trig-1", "name", true))

	data, _ := c.Workflow().Node("trig-1").Data.(*models.TriggerData)
	assert.True(t, data.CoreVariables[0].Hidden)
	assert.False(t, data.CoreVariables[1].Hidden)

	require.NoError(t, c.SetCoreVariableHidden("trig-1", "name", false))
	data, _ = c.Workflow().Node("trig-1").Data.(*models.TriggerData)
	assert.False(t, data.CoreVariables[0].Hidden)

	assert.Error(t, c.SetCoreVariableHidden("trig-1", "ghost", true))
}
