package repolink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hackhub-labs/hackadmin/internal/notify"
)

// Query parameters the OAuth connector appends when it redirects back.
const (
	ParamStatus   = "status"
	ParamUsername = "username"
	ParamMessage  = "message"
)

// LinkFailedMessage is shown when a failed link carries no message.
const LinkFailedMessage = "Failed to link GitHub repositories"

// AuthorizeURL builds the connector URL that starts the linking flow:
// {backend}/auth/github/{teamID}?token=...&repo_links=<comma-joined links>.
func AuthorizeURL(backendURL, teamID, token string, links []string) (string, error) {
	if teamID == "" {
		return "", errors.New("team id is required")
	}
	if len(links) == 0 {
		return "", fmt.Errorf("%w: no repository links", ErrNotSubmittable)
	}
	base, err := url.Parse(strings.TrimRight(backendURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid backend URL %q", backendURL)
	}

	base.Path = base.Path + "/auth/github/" + teamID
	base.RawPath = ""
	q := url.Values{}
	q.Set("token", token)
	q.Set("repo_links", strings.Join(links, ","))
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// Return is the outcome reported by the connector's redirect back.
type Return struct {
	Status   string
	Username string
	Message  string
}

// Succeeded reports whether the connector reported success.
func (r Return) Succeeded() bool {
	switch strings.ToLower(r.Status) {
	case "success", "ok", "true":
		return true
	default:
		return false
	}
}

// Notice converts the outcome into a user-facing notice.
func (r Return) Notice() notify.Notice {
	if r.Succeeded() {
		switch {
		case r.Message != "":
			return notify.Success(r.Message)
		case r.Username != "":
			return notify.Success("GitHub connected as " + r.Username)
		default:
			return notify.Success("GitHub repositories linked")
		}
	}
	if r.Message != "" {
		return notify.Error(r.Message)
	}
	return notify.Error(LinkFailedMessage)
}

// ParseReturn reads the connector outcome from a return URL. ok is false when
// the URL carries no status parameter.
func ParseReturn(rawURL string) (ret Return, ok bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Return{}, false, fmt.Errorf("parsing return URL: %w", err)
	}
	q := u.Query()
	if !q.Has(ParamStatus) {
		return Return{}, false, nil
	}
	return Return{
		Status:   q.Get(ParamStatus),
		Username: q.Get(ParamUsername),
		Message:  q.Get(ParamMessage),
	}, true, nil
}

// StripReturn removes the connector's parameters from rawURL and keeps
// everything else.
func StripReturn(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing return URL: %w", err)
	}
	q := u.Query()
	q.Del(ParamStatus)
	q.Del(ParamUsername)
	q.Del(ParamMessage)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
