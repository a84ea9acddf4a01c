// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultWorkItemType is used when no work item type input is given.
	DefaultWorkItemType = "Bug"
	// DefaultGitHubDomain is the public GitHub host.
	DefaultGitHubDomain = "github.com"
	// defaultADOHost hosts the Azure DevOps Services organizations.
	defaultADOHost = "https://dev.azure.com/"
)

// tokenForHost resolves a GitHub token from gh's environment and config files.
// Replaced in tests.
var tokenForHost = auth.TokenForHost

// Config holds all configuration parameters for a single run.
type Config struct {
	// Label, when set, restricts runs to issues and pull requests carrying it.
	Label  string
	GitHub GitHubConfig
	ADO    ADOConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token     string
	Domain    string
	EventPath string
}

// ADOConfig holds Azure DevOps specific configuration.
type ADOConfig struct {
	Organization   string
	Project        string
	AreaPath       string
	WorkItemType   string
	Tags           string
	SkipExistCheck bool
	ParentWorkItem string
	Token          string
}

// OrgURL returns the organization base URL. A full URL in Organization is
// used as is, which lets Azure DevOps Server collections be targeted.
func (c ADOConfig) OrgURL() string {
	org := strings.TrimRight(c.Organization, "/")
	if strings.HasPrefix(org, "https://") || strings.HasPrefix(org, "http://") {
		return org
	}
	return defaultADOHost + org
}

// binding maps a configuration key to the flag and environment variables
// that can provide it. Environment variables are checked in order.
type binding struct {
	key   string
	flag  string
	usage string
	envs  []string
}

var bindings = []binding{
	{key: "label", flag: "label", usage: "only run when the issue or pull request has this label", envs: []string{"INPUT_LABEL"}},
	{key: "ado.organization", flag: "ado-organization", usage: "Azure DevOps organization name or collection URL", envs: []string{"INPUT_ADO_ORGANIZATION"}},
	{key: "ado.project", flag: "ado-project", usage: "Azure DevOps project", envs: []string{"INPUT_ADO_PROJECT"}},
	{key: "ado.area_path", flag: "ado-area-path", usage: "area path of created work items", envs: []string{"INPUT_ADO_AREA_PATH"}},
	{key: "ado.work_item_type", flag: "ado-work-item-type", usage: "type of created work items (default \"Bug\")", envs: []string{"INPUT_ADO_WORK_ITEM_TYPE"}},
	{key: "ado.tags", flag: "ado-tags", usage: "extra tags, separated by ';'", envs: []string{"INPUT_ADO_TAGS"}},
	{key: "ado.dont_check_if_exist", flag: "ado-dont-check-if-exist", usage: "create a work item without looking for an existing one (any input other than \"false\" or \"0\" enables it)", envs: []string{"INPUT_ADO_DONT_CHECK_IF_EXIST"}},
	{key: "ado.parent_work_item", flag: "parent-work-item", usage: "id of the parent work item", envs: []string{"INPUT_PARENT_WORK_ITEM"}},
	{key: "ado.token", envs: []string{"ado_token", "ADO_TOKEN"}},
	{key: "github.token", envs: []string{"github_token", "GITHUB_TOKEN"}},
	{key: "github.domain", envs: []string{"GITHUB_DOMAIN"}},
	{key: "github.event_path", flag: "event", usage: "path of the event payload (defaults to $GITHUB_EVENT_PATH)", envs: []string{"GITHUB_EVENT_PATH"}},
}

// RegisterFlags adds the command-line overrides for action inputs to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	for _, b := range bindings {
		if b.flag == "" {
			continue
		}
		if b.key == "ado.dont_check_if_exist" {
			fs.Bool(b.flag, false, b.usage)
			continue
		}
		fs.String(b.flag, "", b.usage)
	}
}

// enabledInput interprets a switch-like action input. Any value other than
// empty, "false" or "0" turns the switch on.
func enabledInput(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0":
		return false
	default:
		return true
	}
}

// LoadConfig loads configuration from action inputs in the environment,
// with flags registered by RegisterFlags taking precedence. fs may be nil.
// Tokens are not checked here, see ValidateCredentials.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("ado.work_item_type", DefaultWorkItemType)
	v.SetDefault("github.domain", DefaultGitHubDomain)

	for _, b := range bindings {
		if err := v.BindEnv(append([]string{b.key}, b.envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.key, err)
		}
		if fs == nil || b.flag == "" {
			continue
		}
		if flag := fs.Lookup(b.flag); flag != nil {
			if err := v.BindPFlag(b.key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", b.flag, err)
			}
		}
	}

	config := &Config{
		Label: v.GetString("label"),
		GitHub: GitHubConfig{
			Token:     v.GetString("github.token"),
			Domain:    v.GetString("github.domain"),
			EventPath: v.GetString("github.event_path"),
		},
		ADO: ADOConfig{
			Organization:   v.GetString("ado.organization"),
			Project:        v.GetString("ado.project"),
			AreaPath:       v.GetString("ado.area_path"),
			WorkItemType:   v.GetString("ado.work_item_type"),
			Tags:           v.GetString("ado.tags"),
			SkipExistCheck: enabledInput(v.GetString("ado.dont_check_if_exist")),
			ParentWorkItem: strings.TrimSpace(v.GetString("ado.parent_work_item")),
			Token:          v.GetString("ado.token"),
		},
	}

	// Empty action inputs arrive as empty strings rather than unset variables.
	if config.ADO.WorkItemType == "" {
		config.ADO.WorkItemType = DefaultWorkItemType
	}
	if config.GitHub.Domain == "" {
		config.GitHub.Domain = DefaultGitHubDomain
	}
	if config.GitHub.Token == "" {
		config.GitHub.Token, _ = tokenForHost(config.GitHub.Domain)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// ValidateCredentials ensures that both tokens are available. Runs skipped
// by the label gate never need them.
func (c *Config) ValidateCredentials() error {
	var missingVars []string

	if c.ADO.Token == "" {
		missingVars = append(missingVars, "ado_token")
	}
	if c.GitHub.Token == "" {
		missingVars = append(missingVars, "github_token")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required credentials: %v", missingVars)
	}
	return nil
}

// validateConfig ensures that all required inputs are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.ADO.Organization == "" {
		missingVars = append(missingVars, "INPUT_ADO_ORGANIZATION")
	}
	if config.ADO.Project == "" {
		missingVars = append(missingVars, "INPUT_ADO_PROJECT")
	}
	if config.ADO.AreaPath == "" {
		missingVars = append(missingVars, "INPUT_ADO_AREA_PATH")
	}
	if config.GitHub.EventPath == "" {
		missingVars = append(missingVars, "GITHUB_EVENT_PATH")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if config.ADO.ParentWorkItem != "" {
		id, err := strconv.Atoi(config.ADO.ParentWorkItem)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid parent work item %q: expected a positive work item id", config.ADO.ParentWorkItem)
		}
	}

	return nil
}
