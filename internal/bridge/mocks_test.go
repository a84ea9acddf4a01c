package bridge

import (
	"context"
	"errors"
	"strings"

	"github.com/danielolaszy/gh2ado/internal/ado"
	"github.com/danielolaszy/gh2ado/internal/config"
	"github.com/danielolaszy/gh2ado/pkg/models"
)

// MockWorkItemTracker implements WorkItemTracker for testing and counts calls.
type MockWorkItemTracker struct {
	QueryByWiqlFunc    func(string) ([]int, error)
	GetWorkItemFunc    func(int) (*models.WorkItem, error)
	CreateWorkItemFunc func(string, ado.PatchDocument) (*models.WorkItem, error)

	Queries []string
	Gets    []int
	Creates []ado.PatchDocument
}

func (m *MockWorkItemTracker) QueryByWiql(_ context.Context, query string) ([]int, error) {
	m.Queries = append(m.Queries, query)
	if m.QueryByWiqlFunc != nil {
		return m.QueryByWiqlFunc(query)
	}
	return nil, errors.New("QueryByWiql not implemented")
}

func (m *MockWorkItemTracker) GetWorkItem(_ context.Context, id int) (*models.WorkItem, error) {
	m.Gets = append(m.Gets, id)
	if m.GetWorkItemFunc != nil {
		return m.GetWorkItemFunc(id)
	}
	return nil, errors.New("GetWorkItem not implemented")
}

func (m *MockWorkItemTracker) CreateWorkItem(_ context.Context, workItemType string, doc ado.PatchDocument) (*models.WorkItem, error) {
	m.Creates = append(m.Creates, doc)
	if m.CreateWorkItemFunc != nil {
		return m.CreateWorkItemFunc(workItemType, doc)
	}
	return nil, errors.New("CreateWorkItem not implemented")
}

// bodyUpdate records one body edit pushed to GitHub.
type bodyUpdate struct {
	Kind   models.ItemKind
	Owner  string
	Repo   string
	Number int
	Body   string
}

// MockIssueTracker implements IssueTracker for testing.
type MockIssueTracker struct {
	RenderMarkdownFunc func(text, repository string) (string, error)
	UpdateBodyErr      error

	Renders int
	Updates []bodyUpdate
}

func (m *MockIssueTracker) RenderMarkdown(_ context.Context, text, repository string) (string, error) {
	m.Renders++
	if m.RenderMarkdownFunc != nil {
		return m.RenderMarkdownFunc(text, repository)
	}
	return "<p>" + text + "</p>", nil
}

func (m *MockIssueTracker) UpdateIssueBody(_ context.Context, owner, repo string, number int, body string) error {
	m.Updates = append(m.Updates, bodyUpdate{Kind: models.KindIssue, Owner: owner, Repo: repo, Number: number, Body: body})
	return m.UpdateBodyErr
}

func (m *MockIssueTracker) UpdatePullRequestBody(_ context.Context, owner, repo string, number int, body string) error {
	m.Updates = append(m.Updates, bodyUpdate{Kind: models.KindPullRequest, Owner: owner, Repo: repo, Number: number, Body: body})
	return m.UpdateBodyErr
}

// MockOutputs records step outputs.
type MockOutputs struct {
	Values map[string]string
}

func (m *MockOutputs) SetOutput(name, value string) {
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	m.Values[name] = value
}

// memoryTracker is an in-memory work item store answering the existing item
// query the way Azure Boards does for the fields involved.
type memoryTracker struct {
	nextID int
	items  []*models.WorkItem
}

func (m *memoryTracker) QueryByWiql(_ context.Context, query string) ([]int, error) {
	var ids []int
	for _, item := range m.items {
		if strings.Contains(query, "CONTAINS '"+titleMarkerOf(item.Title)+"'") &&
			strings.Contains(query, "[System.AreaPath] = '"+item.AreaPath+"'") {
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}

func (m *memoryTracker) GetWorkItem(_ context.Context, id int) (*models.WorkItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, errors.New("work item not found")
}

func (m *memoryTracker) CreateWorkItem(_ context.Context, _ string, doc ado.PatchDocument) (*models.WorkItem, error) {
	m.nextID++
	title, _ := findOp(doc, ado.FieldTitle)
	area, _ := findOp(doc, ado.FieldAreaPath)
	item := &models.WorkItem{
		ID:       m.nextID,
		Title:    title.Value.(string),
		AreaPath: area.Value.(string),
	}
	m.items = append(m.items, item)
	return item, nil
}

// titleMarkerOf extracts the "[GitHub #n]" prefix of a work item title.
func titleMarkerOf(title string) string {
	end := strings.Index(title, "]")
	if end < 0 {
		return ""
	}
	return title[:end+1]
}

func testConfig() config.Config {
	return config.Config{
		GitHub: config.GitHubConfig{
			Token:     "ghs_test",
			Domain:    config.DefaultGitHubDomain,
			EventPath: "/tmp/event.json",
		},
		ADO: config.ADOConfig{
			Organization: "contoso",
			Project:      "Fabrikam",
			AreaPath:     `Fabrikam\Web`,
			WorkItemType: config.DefaultWorkItemType,
			Token:        "ado_test",
		},
	}
}

func testIssue() *models.TriggerEvent {
	return &models.TriggerEvent{
		Kind:    models.KindIssue,
		Number:  42,
		Title:   "Crash on startup",
		Body:    "Steps...",
		HTMLURL: "https://github.com/org/repo/issues/42",
		Labels:  []string{"bug"},
		Repository: models.Repository{
			Owner:    "org",
			Name:     "repo",
			FullName: "org/repo",
		},
	}
}

// findOp returns the first operation of doc targeting path.
func findOp(doc ado.PatchDocument, path ado.FieldPath) (ado.Operation, bool) {
	for _, op := range doc {
		if op.Path == path {
			return op, true
		}
	}
	return ado.Operation{}, false
}

// relationsOf returns the relations added by doc in order.
func relationsOf(doc ado.PatchDocument) []ado.Relation {
	var rels []ado.Relation
	for _, op := range doc {
		if rel, ok := op.Value.(ado.Relation); ok && op.Path == ado.PathRelations {
			rels = append(rels, rel)
		}
	}
	return rels
}
