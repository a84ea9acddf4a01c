// Package cmd provides the command-line interface for the gh2ado tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gh2ado",
	Short: "gh2ado creates Azure DevOps work items for GitHub issues and pull requests",
	Long: `gh2ado is a GitHub Action and CLI that mirrors a GitHub issue or pull request
into Azure Boards. It creates a work item for the item that triggered the workflow,
links it back to GitHub and annotates the GitHub item with the AB#<id> reference.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}
