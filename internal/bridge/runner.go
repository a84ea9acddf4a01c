// Package bridge creates Azure DevOps work items for GitHub issues and pull
// requests.
//
// A run is a single sequential pass: the label gate, an optional lookup of
// an existing work item, creation of the work item, and the write back of
// its id onto the GitHub item.
package bridge

import (
	"context"
	"fmt"
	"io"

	"github.com/danielolaszy/gh2ado/internal/ado"
	"github.com/danielolaszy/gh2ado/internal/config"
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/danielolaszy/gh2ado/pkg/models"
	"gopkg.in/yaml.v3"
)

// WorkItemTracker is the part of the Azure DevOps client used by a run.
type WorkItemTracker interface {
	QueryByWiql(ctx context.Context, query string) ([]int, error)
	GetWorkItem(ctx context.Context, id int) (*models.WorkItem, error)
	CreateWorkItem(ctx context.Context, workItemType string, doc ado.PatchDocument) (*models.WorkItem, error)
}

// IssueTracker is the part of the GitHub client used by a run.
type IssueTracker interface {
	RenderMarkdown(ctx context.Context, text, repository string) (string, error)
	UpdateIssueBody(ctx context.Context, owner, repo string, number int, body string) error
	UpdatePullRequestBody(ctx context.Context, owner, repo string, number int, body string) error
}

// OutputSetter publishes step outputs.
type OutputSetter interface {
	SetOutput(name, value string)
}

// Connector opens the Azure DevOps connection. It is only called once the
// label gate has passed.
type Connector func(ctx context.Context) (WorkItemTracker, error)

// Outcome describes how a successful run ended.
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeFound   Outcome = "found"
	OutcomeCreated Outcome = "created"
	OutcomePlanned Outcome = "planned"
)

// Result is the result of a successful run. WorkItem is nil for skipped and
// planned runs.
type Result struct {
	Outcome  Outcome
	WorkItem *models.WorkItem
	Patch    ado.PatchDocument
}

// Options alter how a Runner behaves.
type Options struct {
	// DryRun builds the patch document and writes it to Preview as YAML
	// instead of creating the work item.
	DryRun  bool
	Preview io.Writer
}

// Runner executes one run for one GitHub item.
type Runner struct {
	cfg     config.Config
	connect Connector
	hub     IssueTracker
	out     OutputSetter
	opts    Options
}

// NewRunner returns a Runner. cfg is copied and not modified afterwards.
func NewRunner(cfg config.Config, connect Connector, hub IssueTracker, out OutputSetter, opts Options) *Runner {
	return &Runner{
		cfg:     cfg,
		connect: connect,
		hub:     hub,
		out:     out,
		opts:    opts,
	}
}

// Run processes event. Failed remote calls are reported wrapping one of
// ErrAuth, ErrQuery, ErrCreate or ErrWriteback.
func (r *Runner) Run(ctx context.Context, event *models.TriggerEvent) (Result, error) {
	if !ShouldProcess(event, r.cfg.Label) {
		return Result{Outcome: OutcomeSkipped}, nil
	}

	var tracker WorkItemTracker
	if !r.opts.DryRun || !r.cfg.ADO.SkipExistCheck {
		var err error
		tracker, err = r.connect(ctx)
		if err != nil {
			logging.Error("could not connect to azure devops", "error", err)
			return Result{}, fmt.Errorf("%w: %w", ErrAuth, err)
		}
	}

	if r.cfg.ADO.SkipExistCheck {
		logging.Info("skipping the check for an existing work item")
	} else {
		item, found, err := NewFinder(tracker, r.cfg.ADO.AreaPath).Find(ctx, event.Number)
		if err != nil {
			return Result{}, err
		}
		if found {
			logging.Info("found existing work item, no need to create a new one", "id", item.ID)
			return Result{Outcome: OutcomeFound, WorkItem: item}, nil
		}
		logging.Info("could not find existing work item, creating one now")
	}

	creator := NewCreator(r.cfg, tracker, r.hub)

	if r.opts.DryRun {
		doc, err := creator.Plan(ctx, event)
		if err != nil {
			return Result{}, err
		}
		if r.opts.Preview != nil {
			enc := yaml.NewEncoder(r.opts.Preview)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return Result{}, fmt.Errorf("failed to write patch preview: %w", err)
			}
			if err := enc.Close(); err != nil {
				return Result{}, fmt.Errorf("failed to write patch preview: %w", err)
			}
		}
		logging.Info("dry run, work item not created", "type", r.cfg.ADO.WorkItemType, "operations", len(doc))
		return Result{Outcome: OutcomePlanned, Patch: doc}, nil
	}

	item, err := creator.Create(ctx, event)
	if err != nil {
		return Result{}, err
	}

	if err := NewWriteback(r.hub, r.out).Apply(ctx, event, item); err != nil {
		return Result{}, err
	}

	return Result{Outcome: OutcomeCreated, WorkItem: item}, nil
}
