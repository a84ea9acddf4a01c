package bridge

import "errors"

// Failure kinds of a run. Every one of them fails the run; match with
// errors.Is.
var (
	// ErrAuth means no connection to Azure DevOps could be established.
	ErrAuth = errors.New("could not connect to azure devops")
	// ErrQuery means looking up an existing work item failed. No work item
	// is created so that a failed lookup never produces a duplicate.
	ErrQuery = errors.New("error while finding the azure devops work item")
	// ErrCreate means the work item could not be created.
	ErrCreate = errors.New("error while creating the azure devops work item")
	// ErrWriteback means the work item exists but the GitHub item could not
	// be annotated with it.
	ErrWriteback = errors.New("error while linking the github item to the work item")
)
