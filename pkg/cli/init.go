package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mweegram/tickful/pkg/cli/config"
	"github.com/mweegram/tickful/pkg/usecase"
	"github.com/mweegram/tickful/pkg/utils/logging"
	"github.com/mweegram/tickful/pkg/utils/safe"
)

func cmdInit() *cli.Command {
	var engineCfg config.Engine
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "init",
		Usage: "Create the default queue, the sentinel account and the configured seed queues, then exit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			_, seedQueues, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)

			if err := uc.Directory.Bootstrap(ctx); err != nil {
				return goerr.Wrap(err, "failed to bootstrap directory")
			}
			if err := ensureQueues(ctx, uc, seedQueues); err != nil {
				return err
			}

			logging.Default().Info("Initialization completed", "backend", repoCfg.Backend())
			return nil
		},
	}
}
