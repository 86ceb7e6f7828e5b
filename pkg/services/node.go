package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voxflow/voxflow/pkg/catalog"
	"github.com/voxflow/voxflow/pkg/composer"
	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/persistence"
)

// CreateNodeRequest represents the request to add a catalog entry to a
// workflow graph as a new node.
type CreateNodeRequest struct {
	Context       catalog.Context
	IntegrationID string
	EntryID       string

	// SourceNodeID, when set, wires an edge from an existing node to the
	// new one as part of the same save.
	SourceNodeID string
	SourceHandle string
}

// CreateEdgeRequest represents the request to connect two nodes.
type CreateEdgeRequest struct {
	Source          string
	Target          string
	SourceHandle    string
	Condition       models.EdgeCondition
	CustomCondition string
}

// Node handles node and edge operations on a workflow graph. Every
// operation loads the document, mutates it through a composer, and writes
// the whole document back.
type Node struct {
	persistence persistence.Persistence
}

// NewNode creates a new node service.
func NewNode(persistence persistence.Persistence) *Node {
	return &Node{
		persistence: persistence,
	}
}

// CreateNode instantiates a catalog entry into the workflow graph.
func (n *Node) CreateNode(ctx context.Context, workflowID string, req *CreateNodeRequest) (*models.Node, error) {
	workflow, comp, err := n.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	node, err := catalog.Instantiate(req.Context, req.IntegrationID, req.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate catalog entry: %w", err)
	}

	comp.AddNode(node)

	if req.SourceNodeID != "" {
		edge := &models.Edge{
			Source:       req.SourceNodeID,
			Target:       node.ID,
			SourceHandle: req.SourceHandle,
			Data:         models.EdgeData{Condition: models.EdgeConditionAlways},
		}

		err = comp.AddEdge(edge)
		if err != nil {
			return nil, fmt.Errorf("failed to connect new node: %w", err)
		}
	}

	err = n.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return node, nil
}

// UpdateNode applies a partial configuration patch to one node.
func (n *Node) UpdateNode(ctx context.Context, workflowID, nodeID string, patch json.RawMessage) (*models.Node, error) {
	workflow, comp, err := n.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	err = comp.UpdateNode(nodeID, patch)
	if err != nil {
		return nil, err
	}

	err = n.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow.Node(nodeID), nil
}

// DeleteNode removes a node and every edge touching it.
func (n *Node) DeleteNode(ctx context.Context, workflowID, nodeID string) error {
	workflow, comp, err := n.load(ctx, workflowID)
	if err != nil {
		return err
	}

	err = comp.DeleteNode(nodeID)
	if err != nil {
		return err
	}

	err = n.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	return nil
}

// DuplicateNode clones a node with a fresh identity. Trigger nodes cannot
// be duplicated.
func (n *Node) DuplicateNode(ctx context.Context, workflowID, nodeID string) (*models.Node, error) {
	workflow, comp, err := n.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	clone, err := comp.DuplicateNode(nodeID)
	if err != nil {
		return nil, err
	}

	err = n.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return clone, nil
}

// CreateEdge connects two existing nodes.
func (n *Node) CreateEdge(ctx context.Context, workflowID string, req *CreateEdgeRequest) (*models.Edge, error) {
	workflow, comp, err := n.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	condition := req.Condition
	if condition == "" {
		condition = models.EdgeConditionAlways
	}

	edge := &models.Edge{
		Source:       req.Source,
		Target:       req.Target,
		SourceHandle: req.SourceHandle,
		Data: models.EdgeData{
			Condition:       condition,
			CustomCondition: req.CustomCondition,
		},
	}

	err = comp.AddEdge(edge)
	if err != nil {
		return nil, err
	}

	err = n.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return edge, nil
}

// DeleteEdge removes one edge by id.
func (n *Node) DeleteEdge(ctx context.Context, workflowID, edgeID string) error {
	workflow, comp, err := n.load(ctx, workflowID)
	if err != nil {
		return err
	}

	err = comp.DeleteEdge(edgeID)
	if err != nil {
		return err
	}

	err = n.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return fmt.Errorf("failed to save workflow: %w", err)
	}

	return nil
}

func (n *Node) load(ctx context.Context, workflowID string) (*models.Workflow, *composer.Composer, error) {
	workflow, err := n.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return nil, nil, persistence.ErrWorkflowNotFound
		}

		return nil, nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	if workflow == nil {
		return nil, nil, persistence.ErrWorkflowNotFound
	}

	return workflow, composer.New(workflow), nil
}
