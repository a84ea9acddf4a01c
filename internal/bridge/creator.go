package bridge

import (
	"context"
	"fmt"

	"github.com/danielolaszy/gh2ado/internal/ado"
	"github.com/danielolaszy/gh2ado/internal/config"
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/danielolaszy/gh2ado/pkg/models"
)

// Creator creates the work item mirroring a GitHub item.
type Creator struct {
	cfg     config.Config
	tracker WorkItemTracker
	hub     IssueTracker
}

// NewCreator returns a Creator. tracker may be nil when only Plan is used.
func NewCreator(cfg config.Config, tracker WorkItemTracker, hub IssueTracker) *Creator {
	return &Creator{cfg: cfg, tracker: tracker, hub: hub}
}

// Plan builds the patch document that Create submits for event.
func (c *Creator) Plan(ctx context.Context, event *models.TriggerEvent) (ado.PatchDocument, error) {
	logging.Info("creating a description based on the github item", "number", event.Number)

	rendered, err := c.hub.RenderMarkdown(ctx, event.Body, event.Repository.FullName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	var parentURL string
	if c.cfg.ADO.ParentWorkItem != "" {
		parentURL = ado.WorkItemEditURL(c.cfg.ADO.OrgURL(), c.cfg.ADO.ParentWorkItem)
	}

	doc, err := ado.NewPatchBuilder().
		Title(FormatTitle(event.Number, event.Title)).
		Description(FormatDescription(event.HTMLURL, event.Number, rendered)).
		Tags(ComposeTags(c.cfg.ADO.Tags, ShortRepoName(event.Repository.FullName, c.cfg.GitHub.Domain))).
		Hyperlink(event.HTMLURL).
		Parent(parentURL).
		AreaPath(c.cfg.ADO.AreaPath).
		Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	return doc, nil
}

// Create submits the patch document for event and returns the new work item.
func (c *Creator) Create(ctx context.Context, event *models.TriggerEvent) (*models.WorkItem, error) {
	doc, err := c.Plan(ctx, event)
	if err != nil {
		return nil, err
	}

	logging.Info("creating work item",
		"type", c.cfg.ADO.WorkItemType,
		"number", event.Number,
		"project", c.cfg.ADO.Project)

	item, err := c.tracker.CreateWorkItem(ctx, c.cfg.ADO.WorkItemType, doc)
	if err != nil {
		logging.Error("create work item failed", "type", c.cfg.ADO.WorkItemType, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	if item == nil || item.ID == 0 {
		return nil, fmt.Errorf("%w: no work item returned, the work item type %q may not be correct", ErrCreate, c.cfg.ADO.WorkItemType)
	}

	logging.Info("work item successfully created", "id", item.ID)
	return item, nil
}
