package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/danielolaszy/gh2ado/internal/actions"
	"github.com/danielolaszy/gh2ado/internal/ado"
	"github.com/danielolaszy/gh2ado/internal/bridge"
	"github.com/danielolaszy/gh2ado/internal/config"
	"github.com/danielolaszy/gh2ado/internal/github"
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// syncCmd creates the work item for the issue or pull request that
// triggered the workflow.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create an Azure DevOps work item for the triggering issue or pull request",
	Long: `Create an Azure DevOps work item for the GitHub issue or pull request that
triggered the workflow.

The command reads the event payload from $GITHUB_EVENT_PATH and the action inputs
from INPUT_* environment variables; flags override the inputs.

1. If a label is configured and the item does not carry it, nothing happens
2. Unless --ado-dont-check-if-exist is set, Azure Boards is searched for a work
   item titled "[GitHub #<number>] ..." in the configured area path; if one
   exists the run ends
3. A work item is created with the GitHub body rendered as its description, a
   hyperlink to the GitHub item and, optionally, a parent work item
4. "AB#<id>" is appended to the GitHub item body and the id is set as the "id"
   step output

Example:
  gh2ado sync --event event.json --ado-organization contoso \
    --ado-project Fabrikam --ado-area-path 'Fabrikam\Web' --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), cmd.Flags(), cmd.OutOrStdout())
	},
}

func init() {
	addSyncFlags(syncCmd.Flags())
}

func addSyncFlags(fs *pflag.FlagSet) {
	config.RegisterFlags(fs)
	fs.Bool("dry-run", false, "print the work item patch document instead of creating the work item")
}

// reporter publishes outputs and failures to the Actions runner.
type reporter interface {
	bridge.OutputSetter
	Fail(err error)
}

// Client constructors, replaced in tests.
var (
	newIssueTracker = func(cfg config.GitHubConfig) (bridge.IssueTracker, error) {
		client, err := github.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	connectWorkItemTracker = func(ctx context.Context, cfg config.ADOConfig) (bridge.WorkItemTracker, error) {
		client, err := ado.Connect(ctx, cfg.OrgURL(), cfg.Project, cfg.Token)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	newReporter = func() reporter {
		return actions.NewReporter()
	}
)

// runSync executes one run and reports a failure to the runner.
func runSync(ctx context.Context, fs *pflag.FlagSet, stdout io.Writer) error {
	out := newReporter()
	if err := syncItem(ctx, fs, stdout, out); err != nil {
		out.Fail(err)
		return err
	}
	return nil
}

func syncItem(ctx context.Context, fs *pflag.FlagSet, stdout io.Writer, out reporter) error {
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dryRun, err := fs.GetBool("dry-run")
	if err != nil {
		return err
	}

	event, err := github.LoadEvent(cfg.GitHub.EventPath)
	if err != nil {
		return err
	}

	logging.Info("starting synchronization",
		"repository", event.Repository.FullName,
		"kind", event.Kind,
		"number", event.Number,
		"project", cfg.ADO.Project,
		"area_path", cfg.ADO.AreaPath,
		"dry_run", dryRun)

	// Unlabeled items, such as pull requests from forks, run without secrets.
	if !bridge.ShouldProcess(event, cfg.Label) {
		logging.Info("synchronization complete", "outcome", bridge.OutcomeSkipped)
		return nil
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}

	hub, err := newIssueTracker(cfg.GitHub)
	if err != nil {
		return fmt.Errorf("failed to initialize github client: %w", err)
	}

	connect := func(ctx context.Context) (bridge.WorkItemTracker, error) {
		return connectWorkItemTracker(ctx, cfg.ADO)
	}

	runner := bridge.NewRunner(*cfg, connect, hub, out, bridge.Options{
		DryRun:  dryRun,
		Preview: stdout,
	})

	result, err := runner.Run(ctx, event)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case bridge.OutcomeCreated, bridge.OutcomeFound:
		logging.Info("synchronization complete",
			"outcome", result.Outcome,
			"work_item_id", result.WorkItem.ID)
	default:
		logging.Info("synchronization complete", "outcome", result.Outcome)
	}
	return nil
}
