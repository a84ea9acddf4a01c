// Package models defines data structures shared across the application.
package models

// ItemKind tells whether a trigger event carries an issue or a pull request.
type ItemKind string

const (
	// KindIssue marks an event raised for a GitHub issue.
	KindIssue ItemKind = "issue"
	// KindPullRequest marks an event raised for a GitHub pull request.
	KindPullRequest ItemKind = "pull_request"
)

// Repository identifies the GitHub repository an event originated from.
type Repository struct {
	// Owner is the login of the repository owner (e.g., "octo-org")
	Owner string

	// Name is the short repository name (e.g., "octo-repo")
	Name string

	// FullName is the "owner/name" form of the repository
	FullName string
}

// TriggerEvent represents the issue or pull request that triggered a run.
type TriggerEvent struct {
	// Kind discriminates between issues and pull requests
	Kind ItemKind

	// Number is the issue or pull request number in GitHub (e.g., 42)
	Number int

	// Title is the issue's title or summary
	Title string

	// Body is the full markdown body; it is appended to once per run
	Body string

	// HTMLURL is the browser URL of the issue or pull request
	HTMLURL string

	// Labels is a slice of label names attached to the item
	Labels []string

	// Repository is the repository the item lives in
	Repository Repository
}

// HasLabel reports whether the event carries a label with exactly this name.
func (e *TriggerEvent) HasLabel(name string) bool {
	for _, label := range e.Labels {
		if label == name {
			return true
		}
	}
	return false
}

// WorkItemRelation is a link attached to an Azure DevOps work item.
type WorkItemRelation struct {
	// Rel is the link type (e.g., "Hyperlink", "System.LinkTypes.Hierarchy-Reverse")
	Rel string

	// URL is the target of the link
	URL string
}

// WorkItem represents an Azure DevOps work item with the fields this tool reads.
type WorkItem struct {
	// ID is the numeric work item identifier (e.g., 1001)
	ID int

	// Title is the System.Title field
	Title string

	// Description is the System.Description field
	Description string

	// Tags is the semicolon separated System.Tags field
	Tags string

	// AreaPath is the System.AreaPath field
	AreaPath string

	// URL is the REST URL of the work item
	URL string

	// Relations holds the work item links, present when relations were expanded
	Relations []WorkItemRelation
}
