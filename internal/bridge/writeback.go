package bridge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/danielolaszy/gh2ado/pkg/models"
)

// OutputID is the name of the step output carrying the work item id.
const OutputID = "id"

// Writeback links a GitHub item to its new work item.
type Writeback struct {
	hub IssueTracker
	out OutputSetter
}

// NewWriteback returns a Writeback pushing body updates through hub and
// publishing the id through out.
func NewWriteback(hub IssueTracker, out OutputSetter) *Writeback {
	return &Writeback{hub: hub, out: out}
}

// Apply appends the AB#<id> reference to the body of the GitHub item, pushes
// it, and sets the id output.
func (w *Writeback) Apply(ctx context.Context, event *models.TriggerEvent, item *models.WorkItem) error {
	event.Body += BacklinkSuffix(item.ID)

	owner, repo := event.Repository.Owner, event.Repository.Name
	var err error
	switch event.Kind {
	case models.KindIssue:
		err = w.hub.UpdateIssueBody(ctx, owner, repo, event.Number, event.Body)
	case models.KindPullRequest:
		err = w.hub.UpdatePullRequestBody(ctx, owner, repo, event.Number, event.Body)
	default:
		err = fmt.Errorf("unknown item kind %q", event.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: work item %d was created: %w", ErrWriteback, item.ID, err)
	}

	logging.Info("work item successfully created or found", "id", item.ID)
	w.out.SetOutput(OutputID, strconv.Itoa(item.ID))
	return nil
}
