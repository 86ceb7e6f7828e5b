package composer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/voxflow/voxflow/pkg/models"
)

// The nested-list operations below mirror the config panels: the list is
// cloned, the target index spliced or patched, and the whole list written
// back. Rows are addressed by index, not id.

func (c *Composer) conditionData(nodeID string) (*models.ConditionData, error) {
	node := c.workflow.Node(nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	data, ok := node.Data.(*models.ConditionData)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a condition node", ErrWrongNodeKind, nodeID)
	}

	return data, nil
}

func (c *Composer) routerData(nodeID string) (*models.RouterData, error) {
	node := c.workflow.Node(nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	data, ok := node.Data.(*models.RouterData)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a router node", ErrWrongNodeKind, nodeID)
	}

	return data, nil
}

func (c *Composer) triggerData(nodeID string) (*models.TriggerData, error) {
	node := c.workflow.Node(nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	data, ok := node.Data.(*models.TriggerData)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a trigger node", ErrWrongNodeKind, nodeID)
	}

	return data, nil
}

// AddConditionRow appends an empty comparison row to a condition node.
func (c *Composer) AddConditionRow(nodeID string) error {
	data, err := c.conditionData(nodeID)
	if err != nil {
		return err
	}

	rows := append(append([]models.ConditionRow{}, data.Conditions...), models.ConditionRow{
		Operator: models.OperatorEquals,
	})
	data.Conditions = rows

	return nil
}

// UpdateConditionRow replaces the row at index.
func (c *Composer) UpdateConditionRow(nodeID string, index int, row models.ConditionRow) error {
	data, err := c.conditionData(nodeID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(data.Conditions) {
		return fmt.Errorf("%w: condition row %d", ErrIndexOutOfRange, index)
	}

	rows := append([]models.ConditionRow{}, data.Conditions...)
	rows[index] = row
	data.Conditions = rows

	return nil
}

// RemoveConditionRow splices out the row at index.
func (c *Composer) RemoveConditionRow(nodeID string, index int) error {
	data, err := c.conditionData(nodeID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(data.Conditions) {
		return fmt.Errorf("%w: condition row %d", ErrIndexOutOfRange, index)
	}

	rows := append([]models.ConditionRow{}, data.Conditions...)
	data.Conditions = append(rows[:index], rows[index+1:]...)

	return nil
}

// AddBranch appends a labeled branch to a router node.
func (c *Composer) AddBranch(nodeID, label string) (*models.RouterBranch, error) {
	data, err := c.routerData(nodeID)
	if err != nil {
		return nil, err
	}

	branch := models.RouterBranch{
		ID:        uuid.New().String(),
		Label:     label,
		Condition: models.BranchCondition{Operator: models.OperatorEquals},
	}

	data.Branches = append(append([]models.RouterBranch{}, data.Branches...), branch)

	return &data.Branches[len(data.Branches)-1], nil
}

// UpdateBranch replaces the branch at index, preserving its id.
func (c *Composer) UpdateBranch(nodeID string, index int, branch models.RouterBranch) error {
	data, err := c.routerData(nodeID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(data.Branches) {
		return fmt.Errorf("%w: branch %d", ErrIndexOutOfRange, index)
	}

	branch.ID = data.Branches[index].ID
	branches := append([]models.RouterBranch{}, data.Branches...)
	branches[index] = branch
	data.Branches = branches

	return nil
}

// RemoveBranch splices out the branch at index. Edges attached to the
// branch's handle are dropped, and handles for later branches shift down,
// matching the canvas's index-addressed rendering.
func (c *Composer) RemoveBranch(nodeID string, index int) error {
	data, err := c.routerData(nodeID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(data.Branches) {
		return fmt.Errorf("%w: branch %d", ErrIndexOutOfRange, index)
	}

	branches := append([]models.RouterBranch{}, data.Branches...)
	data.Branches = append(branches[:index], branches[index+1:]...)

	edges := c.workflow.Edges[:0]

	for _, e := range c.workflow.Edges {
		if e.Source == nodeID && e.SourceHandle == BranchHandle(index) {
			continue
		}

		if e.Source == nodeID {
			if i, ok := parseBranchHandle(e.SourceHandle); ok && i > index {
				e.SourceHandle = BranchHandle(i - 1)
			}
		}

		edges = append(edges, e)
	}

	c.workflow.Edges = edges

	return nil
}

// AddExpectedVariable appends a free-form expected variable to a trigger.
// Duplicates and empty names are ignored, matching the add-on-Enter field.
func (c *Composer) AddExpectedVariable(nodeID, name string) error {
	data, err := c.triggerData(nodeID)
	if err != nil {
		return err
	}

	if name == "" {
		return nil
	}

	for _, existing := range data.ExpectedVariables {
		if existing == name {
			return nil
		}
	}

	data.ExpectedVariables = append(append([]string{}, data.ExpectedVariables...), name)

	return nil
}

// RemoveExpectedVariable drops a named expected variable from a trigger.
func (c *Composer) RemoveExpectedVariable(nodeID, name string) error {
	data, err := c.triggerData(nodeID)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(data.ExpectedVariables))

	for _, existing := range data.ExpectedVariables {
		if existing != name {
			kept = append(kept, existing)
		}
	}

	data.ExpectedVariables = kept

	return nil
}

// SetCoreVariableHidden hides or restores one of the trigger's core output
// variables. Hidden entries stay in the list so restore is possible.
func (c *Composer) SetCoreVariableHidden(nodeID, key string, hidden bool) error {
	data, err := c.triggerData(nodeID)
	if err != nil {
		return err
	}

	variables := append([]models.CoreVariable{}, data.CoreVariables...)

	for i := range variables {
		if variables[i].Key == key {
			variables[i].Hidden = hidden
			data.CoreVariables = variables

			return nil
		}
	}

	return fmt.Errorf("%w: core variable %s", ErrNodeNotFound, key)
}
