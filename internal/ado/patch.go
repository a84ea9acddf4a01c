package ado

import (
	"errors"
	"fmt"
	"strings"
)

// FieldPath is the JSON pointer a patch operation targets.
type FieldPath string

const (
	FieldTitle       FieldPath = "/fields/System.Title"
	FieldDescription FieldPath = "/fields/System.Description"
	FieldReproSteps  FieldPath = "/fields/Microsoft.VSTS.TCM.ReproSteps"
	FieldTags        FieldPath = "/fields/System.Tags"
	FieldAreaPath    FieldPath = "/fields/System.AreaPath"
	// PathRelations appends to the relation list.
	PathRelations FieldPath = "/relations/-"
)

// Op is a JSON Patch verb. Work item creation only ever adds.
type Op string

const OpAdd Op = "add"

// Link types understood by Azure Boards.
const (
	RelHyperlink = "Hyperlink"
	RelParent    = "System.LinkTypes.Hierarchy-Reverse"
)

// Relation is the value of an operation on PathRelations.
type Relation struct {
	Rel        string         `json:"rel" yaml:"rel"`
	URL        string         `json:"url" yaml:"url"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Operation is a single entry of a PatchDocument.
type Operation struct {
	Op    Op        `json:"op" yaml:"op"`
	Path  FieldPath `json:"path" yaml:"path"`
	Value any       `json:"value" yaml:"value"`
}

// PatchDocument is an ordered list of operations creating a work item.
type PatchDocument []Operation

// PatchBuilder assembles the creation document for a work item mirroring a
// GitHub issue or pull request.
type PatchBuilder struct {
	title       string
	description string
	tags        string
	hyperlink   string
	parentURL   string
	areaPath    string
}

// NewPatchBuilder returns an empty builder.
func NewPatchBuilder() *PatchBuilder {
	return &PatchBuilder{}
}

// Title sets System.Title.
func (b *PatchBuilder) Title(title string) *PatchBuilder {
	b.title = title
	return b
}

// Description sets both System.Description and the repro steps field, which
// bugs display instead of the description.
func (b *PatchBuilder) Description(html string) *PatchBuilder {
	b.description = html
	return b
}

// Tags sets System.Tags, a ';' separated list.
func (b *PatchBuilder) Tags(tags string) *PatchBuilder {
	b.tags = tags
	return b
}

// Hyperlink links the work item back to the GitHub item at url.
func (b *PatchBuilder) Hyperlink(url string) *PatchBuilder {
	b.hyperlink = url
	return b
}

// Parent makes the work item a child of the work item at url. An empty url
// leaves the work item without a parent.
func (b *PatchBuilder) Parent(url string) *PatchBuilder {
	b.parentURL = url
	return b
}

// AreaPath sets System.AreaPath.
func (b *PatchBuilder) AreaPath(areaPath string) *PatchBuilder {
	b.areaPath = areaPath
	return b
}

// Build validates the collected values and returns the document in the
// order Title, Description, ReproSteps, Tags, Hyperlink, Parent, AreaPath.
func (b *PatchBuilder) Build() (PatchDocument, error) {
	var problems []string
	if strings.TrimSpace(b.title) == "" {
		problems = append(problems, "title is empty")
	}
	if strings.TrimSpace(b.hyperlink) == "" {
		problems = append(problems, "hyperlink is empty")
	}
	if strings.TrimSpace(b.areaPath) == "" {
		problems = append(problems, "area path is empty")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid patch document: %w", errors.New(strings.Join(problems, ", ")))
	}

	doc := PatchDocument{
		{Op: OpAdd, Path: FieldTitle, Value: b.title},
		{Op: OpAdd, Path: FieldDescription, Value: b.description},
		{Op: OpAdd, Path: FieldReproSteps, Value: b.description},
		{Op: OpAdd, Path: FieldTags, Value: b.tags},
		{Op: OpAdd, Path: PathRelations, Value: Relation{Rel: RelHyperlink, URL: b.hyperlink}},
	}

	if b.parentURL != "" {
		doc = append(doc, Operation{
			Op:   OpAdd,
			Path: PathRelations,
			Value: Relation{
				Rel:        RelParent,
				URL:        b.parentURL,
				Attributes: map[string]any{"comment": ""},
			},
		})
	}

	return append(doc, Operation{Op: OpAdd, Path: FieldAreaPath, Value: b.areaPath}), nil
}

// WorkItemEditURL returns the browser URL of work item id in the
// organization at orgURL.
func WorkItemEditURL(orgURL, id string) string {
	return strings.TrimRight(orgURL, "/") + "/_workitems/edit/" + id
}
