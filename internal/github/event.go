package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/danielolaszy/gh2ado/pkg/models"
	"github.com/google/go-github/v41/github"
)

// eventPayload holds the parts of an issues or pull_request webhook payload
// we read.
type eventPayload struct {
	Issue       *github.Issue       `json:"issue"`
	PullRequest *github.PullRequest `json:"pull_request"`
	Repository  *github.Repository  `json:"repository"`
}

// LoadEvent reads the webhook payload stored at path, as found in
// $GITHUB_EVENT_PATH, and converts it to a TriggerEvent.
func LoadEvent(path string) (*models.TriggerEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	return ParseEvent(raw)
}

// ParseEvent converts a raw webhook payload to a TriggerEvent. Exactly one
// of issue or pull_request must be present.
func ParseEvent(raw []byte) (*models.TriggerEvent, error) {
	var payload eventPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}

	if payload.Repository == nil {
		return nil, errors.New("event payload has no repository")
	}

	var event *models.TriggerEvent
	switch {
	case payload.Issue != nil && payload.PullRequest != nil:
		return nil, errors.New("event payload carries both an issue and a pull request")
	case payload.Issue != nil:
		issue := payload.Issue
		event = &models.TriggerEvent{
			Kind:    models.KindIssue,
			Number:  issue.GetNumber(),
			Title:   issue.GetTitle(),
			Body:    issue.GetBody(),
			HTMLURL: issue.GetHTMLURL(),
			Labels:  labelNames(issue.Labels),
		}
	case payload.PullRequest != nil:
		pr := payload.PullRequest
		event = &models.TriggerEvent{
			Kind:    models.KindPullRequest,
			Number:  pr.GetNumber(),
			Title:   pr.GetTitle(),
			Body:    pr.GetBody(),
			HTMLURL: pr.GetHTMLURL(),
			Labels:  labelNames(pr.Labels),
		}
	default:
		return nil, errors.New("event payload carries neither an issue nor a pull request")
	}

	event.Repository = models.Repository{
		Owner:    payload.Repository.GetOwner().GetLogin(),
		Name:     payload.Repository.GetName(),
		FullName: payload.Repository.GetFullName(),
	}

	if event.Number == 0 {
		return nil, fmt.Errorf("%s in event payload has no number", event.Kind)
	}

	return event, nil
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.GetName())
	}
	return names
}
