package serve

import (
	"log/slog"

	"github.com/bornholm/backlog/internal/config"
	"github.com/bornholm/backlog/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the backlog server",
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			server, err := setup.NewHTTPServerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx, "starting server", slog.Any("address", conf.HTTP.Address))

			if err := server.Run(ctx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
