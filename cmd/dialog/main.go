// Terminal login dialog.
//
// Press l to open the dialog, enter to submit, esc to close and q to quit.
// Logs go to LOG_FILE because the terminal belongs to the dialog.
package main

import (
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/andrasnagy-data/authdialog/internal/components/authclient"
	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/andrasnagy-data/authdialog/internal/shared/logging"
	"github.com/andrasnagy-data/authdialog/internal/tui"
)

func newApp(cfg *config.Config, logger zerolog.Logger, client *authclient.Client) *tui.App {
	return tui.NewApp(tui.Options{
		Auth:          client,
		Sessions:      client,
		ToastDuration: cfg.ToastDuration,
		Logger:        logger,
	})
}

func flushOnStop(lc fx.Lifecycle, cfg *config.Config, writer *sentryzerolog.Writer) {
	lc.Append(fx.StopHook(func() {
		logging.Flush(cfg, writer)
	}))
}

func main() {
	fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		fx.Provide(
			config.NewConfig,
			logging.NewFileLogger,
			authclient.NewClient,
			newApp,
		),
		fx.Invoke(flushOnStop, tui.Run),
	).Run()
}
