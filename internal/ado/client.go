// Package ado provides functionality for interacting with Azure DevOps work item tracking.
package ado

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/danielolaszy/gh2ado/pkg/models"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/workitemtracking"
)

// Client encapsulates the work item tracking API of one Azure DevOps project.
type Client struct {
	wit     workitemtracking.Client
	project string
}

// Connect authenticates against the organization at orgURL with a personal
// access token and returns a client scoped to project.
func Connect(ctx context.Context, orgURL, project, token string) (*Client, error) {
	if token == "" {
		return nil, errors.New("azure devops token not found in configuration")
	}

	logging.Info("connecting to azure devops",
		"organization_url", orgURL,
		"project", project,
		"token", logging.MaskSensitive(token))

	connection := azuredevops.NewPatConnection(orgURL, token)
	wit, err := workitemtracking.NewClient(ctx, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to create work item tracking client: %w", err)
	}

	return NewClient(wit, project), nil
}

// NewClient wraps an existing work item tracking client.
func NewClient(wit workitemtracking.Client, project string) *Client {
	return &Client{wit: wit, project: project}
}

// QueryByWiql runs query in the client's project and returns the ids of the
// matching work items in the order the service returned them.
func (c *Client) QueryByWiql(ctx context.Context, query string) ([]int, error) {
	logging.Debug("running wiql query", "project", c.project, "query", query)

	result, err := c.wit.QueryByWiql(ctx, workitemtracking.QueryByWiqlArgs{
		Wiql:    &workitemtracking.Wiql{Query: &query},
		Project: &c.project,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query work items: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("no query result for project %q, the project name appears to be invalid", c.project)
	}

	if result.WorkItems == nil {
		return nil, nil
	}
	ids := make([]int, 0, len(*result.WorkItems))
	for _, ref := range *result.WorkItems {
		if ref.Id != nil {
			ids = append(ids, *ref.Id)
		}
	}
	return ids, nil
}

// GetWorkItem fetches work item id with all fields and relations expanded.
func (c *Client) GetWorkItem(ctx context.Context, id int) (*models.WorkItem, error) {
	item, err := c.wit.GetWorkItem(ctx, workitemtracking.GetWorkItemArgs{
		Id:      &id,
		Project: &c.project,
		Expand:  &workitemtracking.WorkItemExpandValues.All,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get work item %d: %w", id, err)
	}
	if item == nil {
		return nil, fmt.Errorf("work item %d not returned", id)
	}
	return toModel(item), nil
}

// CreateWorkItem creates a work item of type workItemType from doc. A
// response without an id is reported as an error.
func (c *Client) CreateWorkItem(ctx context.Context, workItemType string, doc PatchDocument) (*models.WorkItem, error) {
	validateOnly := false
	bypassRules := false

	ops := make([]webapi.JsonPatchOperation, 0, len(doc))
	for _, op := range doc {
		verb := webapi.Operation(op.Op)
		path := string(op.Path)
		ops = append(ops, webapi.JsonPatchOperation{
			Op:    &verb,
			Path:  &path,
			Value: op.Value,
		})
	}

	item, err := c.wit.CreateWorkItem(ctx, workitemtracking.CreateWorkItemArgs{
		Document:     &ops,
		Project:      &c.project,
		Type:         &workItemType,
		ValidateOnly: &validateOnly,
		BypassRules:  &bypassRules,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s work item: %w", workItemType, err)
	}
	if item == nil || item.Id == nil {
		return nil, fmt.Errorf("create returned no %s work item, the work item type may not be correct", workItemType)
	}
	return toModel(item), nil
}

// toModel converts the SDK representation into our internal model.
func toModel(item *workitemtracking.WorkItem) *models.WorkItem {
	result := &models.WorkItem{}
	if item.Id != nil {
		result.ID = *item.Id
	}
	if item.Url != nil {
		result.URL = *item.Url
	}
	if item.Fields != nil {
		fields := *item.Fields
		result.Title = stringField(fields, "System.Title")
		result.Description = stringField(fields, "System.Description")
		result.Tags = stringField(fields, "System.Tags")
		result.AreaPath = stringField(fields, "System.AreaPath")
	}
	if item.Relations != nil {
		for _, rel := range *item.Relations {
			var r models.WorkItemRelation
			if rel.Rel != nil {
				r.Rel = *rel.Rel
			}
			if rel.Url != nil {
				r.URL = *rel.Url
			}
			result.Relations = append(result.Relations, r)
		}
	}
	return result
}

func stringField(fields map[string]interface{}, name string) string {
	if s, ok := fields[name].(string); ok {
		return s
	}
	return ""
}
