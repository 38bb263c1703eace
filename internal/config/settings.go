package config

import (
	"errors"
	"strings"
)

// Settings is the resolved view of configuration used by commands.
type Settings struct {
	APIURL      string
	BackendURL  string
	OrgID       string
	HackathonID string
	Token       string
	GitHubToken string
}

// Resolve reads the current configuration into Settings. Load must have been
// called first.
func Resolve() Settings {
	return Settings{
		APIURL:      strings.TrimRight(Get(KeyAPIURL), "/"),
		BackendURL:  strings.TrimRight(Get(KeyBackendURL), "/"),
		OrgID:       Get(KeyOrgID),
		HackathonID: Get(KeyHackathonID),
		Token:       Get(KeyToken),
		GitHubToken: Get(KeyGitHubToken),
	}
}

// Override replaces fields with non-empty values from flags.
func (s Settings) Override(orgID, hackathonID, apiURL string) Settings {
	if orgID != "" {
		s.OrgID = orgID
	}
	if hackathonID != "" {
		s.HackathonID = hackathonID
	}
	if apiURL != "" {
		s.APIURL = strings.TrimRight(apiURL, "/")
	}
	return s
}

// RequireHackathon returns an error naming the missing keys when the
// hackathon (and, if withOrg, the organization) is not configured.
func (s Settings) RequireHackathon(withOrg bool) error {
	var missing []string
	if withOrg && s.OrgID == "" {
		missing = append(missing, KeyOrgID)
	}
	if s.HackathonID == "" {
		missing = append(missing, KeyHackathonID)
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.New("missing configuration: " + strings.Join(missing, ", ") +
		" (set with `config set <key> <value>` or the --org/--hackathon flags)")
}
