package bridge

import (
	"context"
	"fmt"

	"github.com/danielolaszy/gh2ado/internal/ado"
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/danielolaszy/gh2ado/pkg/models"
)

// Finder looks up the work item already created for a GitHub item.
type Finder struct {
	tracker  WorkItemTracker
	areaPath string
}

// NewFinder returns a Finder searching areaPath through tracker.
func NewFinder(tracker WorkItemTracker, areaPath string) *Finder {
	return &Finder{tracker: tracker, areaPath: areaPath}
}

// Find returns the work item whose title carries the marker of GitHub item
// number. found is false when no work item matches. If several match, the
// first one returned by the service is used; that order is not stable.
func (f *Finder) Find(ctx context.Context, number int) (item *models.WorkItem, found bool, err error) {
	query := ado.ExistingItemQuery(TitleMarker(number), f.areaPath)
	logging.Info("checking for an existing work item",
		"number", number,
		"area_path", f.areaPath)
	logging.Debug("azure devops query", "wiql", query)

	ids, err := f.tracker.QueryByWiql(ctx, query)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if len(ids) == 0 {
		return nil, false, nil
	}
	if len(ids) > 1 {
		logging.Warn("several work items match, using the first one",
			"number", number,
			"ids", ids)
	}

	item, err = f.tracker.GetWorkItem(ctx, ids[0])
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	logging.Debug("work item data retrieved", "id", item.ID)
	return item, true, nil
}
