package bridge

import (
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/danielolaszy/gh2ado/pkg/models"
)

// ShouldProcess reports whether a run may continue for event. When a
// required label is configured the event must carry it; a missing label is
// a normal outcome, not an error.
func ShouldProcess(event *models.TriggerEvent, requiredLabel string) bool {
	if requiredLabel == "" || event.HasLabel(requiredLabel) {
		return true
	}

	logging.Info("required label not found on github item, nothing to do",
		"label", requiredLabel,
		"kind", event.Kind,
		"number", event.Number)
	return false
}
