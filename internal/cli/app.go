package cli

import (
	"errors"
	"fmt"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/hackhub-labs/hackadmin/internal/branding"
	"github.com/hackhub-labs/hackadmin/internal/config"
	"github.com/hackhub-labs/hackadmin/internal/logging"
	"github.com/hackhub-labs/hackadmin/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errNotified marks errors whose message already reached the user through a
// notice.
var errNotified = errors.New("reported")

type notifiedError struct{ err error }

func (e notifiedError) Error() string   { return e.err.Error() }
func (e notifiedError) Unwrap() []error { return []error{e.err, errNotified} }
func notified(err error) error          { return notifiedError{err} }

// app bundles what a command needs to talk to the API.
type app struct {
	settings config.Settings
	log      *zap.Logger
	notifier notify.Notifier
	client   *api.Client
}

// newApp loads configuration, applies persistent flag overrides, and builds
// the logger, notifier and API client.
func newApp(cmd *cobra.Command) *app {
	config.Load()
	settings := config.Resolve().Override(flagOrg, flagHackathon, flagAPIURL)

	log := logging.New(logging.Options{Verbose: flagVerbose, Output: cmd.ErrOrStderr()})
	client := api.New(settings.APIURL,
		api.WithToken(settings.Token),
		api.WithOrg(settings.OrgID),
		api.WithHackathon(settings.HackathonID),
		api.WithLogger(log),
		api.WithUserAgent(fmt.Sprintf("%s/%s", branding.CLIName(), buildVersion)),
	)

	return &app{
		settings: settings,
		log:      log,
		notifier: notify.NewWriterNotifier(cmd.ErrOrStderr(), log),
		client:   client,
	}
}

// fail reports err to the user as an error notice, preferring the server's
// message over fallback, and marks it as already shown.
func (a *app) fail(err error, fallback string) error {
	a.notifier.Notify(notify.Error(api.MessageOr(err, fallback)))
	return notified(err)
}
