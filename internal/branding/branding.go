// Package branding provides compile-time identity values for the CLI.
//
// Values are read from the embedded branding.yaml; a deployment pointing at a
// different backend edits that file and rebuilds.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GitHubRepo  string `yaml:"github_repo"`
	APIURL      string `yaml:"api_url"`
	BackendURL  string `yaml:"backend_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "hackadmin",
			DisplayName: "HackAdmin",
			Description: "Admin console for hackathon teams, rounds and repository links",
			HomeDir:     ".hackadmin",
			EnvPrefix:   "HACKADMIN",
			GitHubRepo:  "hackhub-labs/hackadmin",
			APIURL:      "http://localhost:8000/api/v1",
			BackendURL:  "http://localhost:8000",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "hackadmin").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".hackadmin").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "HACKADMIN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" the CLI is released from.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DefaultAPIURL returns the REST API base used when none is configured.
func DefaultAPIURL() string { load(); return defaults.APIURL }

// DefaultBackendURL returns the backend root hosting the OAuth connector.
func DefaultBackendURL() string { load(); return defaults.BackendURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("token") → "HACKADMIN_TOKEN".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
