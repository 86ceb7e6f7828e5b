// Package composer implements the in-memory editing surface of the workflow
// canvas: node/edge mutations driven by the selection and configuration
// panels. All mutations are synchronous object updates; the aggregate is
// persisted wholesale on explicit save.
package composer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/voxflow/voxflow/pkg/models"
)

var (
	// ErrNodeNotFound is returned when an operation targets a missing node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when an operation targets a missing edge.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrWrongNodeKind is returned when a panel operation is applied to a
	// node of the wrong type, e.g. adding a branch to an SMS node.
	ErrWrongNodeKind = errors.New("operation not supported for node type")

	// ErrIndexOutOfRange is returned for index-addressed list operations.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEdgeEndpointMissing is returned when an edge references a node
	// that is not on the canvas.
	ErrEdgeEndpointMissing = errors.New("edge endpoint node not found")
)

// Composer owns the node and edge arrays of one workflow while it is being
// edited. It is not safe for concurrent use; the canvas is single-threaded.
type Composer struct {
	workflow *models.Workflow
}

// New wraps a workflow for editing.
func New(workflow *models.Workflow) *Composer {
	if workflow.Nodes == nil {
		workflow.Nodes = []*models.Node{}
	}

	if workflow.Edges == nil {
		workflow.Edges = []*models.Edge{}
	}

	return &Composer{workflow: workflow}
}

// Workflow returns the aggregate being edited.
func (c *Composer) Workflow() *models.Workflow {
	return c.workflow
}

// AddNode appends a node to the canvas.
func (c *Composer) AddNode(node *models.Node) {
	c.workflow.Nodes = append(c.workflow.Nodes, node)
}

// UpdateNode merge-patches the data of the node with the given id.
func (c *Composer) UpdateNode(id string, patch json.RawMessage) error {
	node := c.workflow.Node(id)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	return node.Patch(patch)
}

// DeleteNode removes a node and every edge touching it.
func (c *Composer) DeleteNode(id string) error {
	if c.workflow.Node(id) == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	nodes := c.workflow.Nodes[:0]

	for _, n := range c.workflow.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}

	c.workflow.Nodes = nodes

	edges := c.workflow.Edges[:0]

	for _, e := range c.workflow.Edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}

	c.workflow.Edges = edges

	return nil
}

// DuplicateNode clones a node's data into a fresh node with a new id. Edges
// are not duplicated. Trigger nodes cannot be duplicated; a workflow has one.
func (c *Composer) DuplicateNode(id string) (*models.Node, error) {
	node := c.workflow.Node(id)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	if node.Type == models.NodeTypeTrigger {
		return nil, fmt.Errorf("%w: trigger nodes cannot be duplicated", ErrWrongNodeKind)
	}

	raw, err := json.Marshal(node.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to clone node data: %w", err)
	}

	data, err := models.NewNodeData(node.Type)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to clone node data: %w", err)
	}

	clone := &models.Node{ID: uuid.New().String(), Type: node.Type, Data: data}
	c.workflow.Nodes = append(c.workflow.Nodes, clone)

	return clone, nil
}

// AddEdge connects two nodes. Both endpoints must exist and the guard must be
// a known condition.
func (c *Composer) AddEdge(edge *models.Edge) error {
	if c.workflow.Node(edge.Source) == nil || c.workflow.Node(edge.Target) == nil {
		return fmt.Errorf("%w: %s -> %s", ErrEdgeEndpointMissing, edge.Source, edge.Target)
	}

	if edge.Data.Condition != "" && !edge.Data.Condition.IsValid() {
		return fmt.Errorf("invalid edge condition %q", edge.Data.Condition)
	}

	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}

	c.workflow.Edges = append(c.workflow.Edges, edge)

	return nil
}

// UpdateEdge replaces the guard data of an edge.
func (c *Composer) UpdateEdge(id string, data models.EdgeData) error {
	if data.Condition != "" && !data.Condition.IsValid() {
		return fmt.Errorf("invalid edge condition %q", data.Condition)
	}

	for _, e := range c.workflow.Edges {
		if e.ID == id {
			e.Data = data

			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrEdgeNotFound, id)
}

// DeleteEdge removes an edge.
func (c *Composer) DeleteEdge(id string) error {
	for i, e := range c.workflow.Edges {
		if e.ID == id {
			c.workflow.Edges = append(c.workflow.Edges[:i], c.workflow.Edges[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrEdgeNotFound, id)
}
