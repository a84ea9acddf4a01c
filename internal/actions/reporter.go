// Package actions reports run results back to the GitHub Actions runner.
package actions

import (
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/sethvargo/go-githubactions"
)

// Reporter writes step outputs and workflow annotations.
type Reporter struct {
	action *githubactions.Action
}

// NewReporter returns a Reporter for the current runner. Options are passed
// to githubactions.New, which tests use to redirect the environment and the
// command stream.
func NewReporter(opts ...githubactions.Option) *Reporter {
	return &Reporter{action: githubactions.New(opts...)}
}

// SetOutput sets the step output name to value.
func (r *Reporter) SetOutput(name, value string) {
	logging.Debug("setting step output", "name", name, "value", value)
	r.action.SetOutput(name, value)
}

// Fail annotates the workflow run with err. The caller is responsible for
// exiting with a non-zero status.
func (r *Reporter) Fail(err error) {
	if err == nil {
		return
	}
	r.action.Errorf("%s", err)
}
