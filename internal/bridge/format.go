package bridge

import (
	"fmt"
	"strconv"

	"github.com/cli/go-gh/v2/pkg/repository"
)

// TitleMarker is the substring identifying the work item of GitHub item
// number. Finder searches for it and FormatTitle prefixes it, so both stay
// in sync.
func TitleMarker(number int) string {
	return "[GitHub #" + strconv.Itoa(number) + "]"
}

// FormatTitle returns the work item title for a GitHub item.
func FormatTitle(number int, title string) string {
	return TitleMarker(number) + " " + title
}

// BacklinkSuffix is appended to the GitHub body so that Azure Boards links
// the item to work item id.
func BacklinkSuffix(id int) string {
	return "\n\nAB#" + strconv.Itoa(id)
}

const descriptionTemplate = `<em>This item was auto-opened from GitHub <a href="%s" target="_new">issue or PR#%d</a></em><br>` +
	`It won't auto-update when the GitHub issue or PR changes so please check the issue or PR for updates.<br><br>` +
	`<strong>Initial description from GitHub:</strong><br><br>%s`

// FormatDescription wraps the rendered GitHub body with the attribution
// header.
func FormatDescription(htmlURL string, number int, renderedBody string) string {
	return fmt.Sprintf(descriptionTemplate, htmlURL, number, renderedBody)
}

// ShortRepoName strips the owner from an "owner/name" repository. Values
// that do not parse are returned unchanged.
func ShortRepoName(fullName, host string) string {
	repo, err := repository.ParseWithHost(fullName, host)
	if err != nil {
		return fullName
	}
	return repo.Name
}

// ComposeTags returns the System.Tags value: the extra tags followed by the
// short repository name, separated by ';'.
func ComposeTags(extra, shortRepoName string) string {
	if extra == "" {
		return shortRepoName
	}
	return extra + ";" + shortRepoName
}
