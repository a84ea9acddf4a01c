package ado

import (
	"fmt"
	"strings"
)

const existingItemQuery = `SELECT [System.Id], [System.WorkItemType], [System.Description], [System.Title], [System.AssignedTo], [System.State], [System.Tags]
FROM workitems
WHERE [System.TeamProject] = @project AND [System.Title] CONTAINS '%s' AND [System.AreaPath] = '%s'`

// ExistingItemQuery returns the WIQL selecting work items of the current
// project whose title contains marker and whose area path is areaPath.
func ExistingItemQuery(marker, areaPath string) string {
	return fmt.Sprintf(existingItemQuery, quoteLiteral(marker), quoteLiteral(areaPath))
}

// quoteLiteral escapes s for use inside a single-quoted WIQL string.
func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
