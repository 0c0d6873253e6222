package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mweegram/tickful/pkg/cli/config"
	httpctrl "github.com/mweegram/tickful/pkg/controller/http"
	"github.com/mweegram/tickful/pkg/usecase"
	"github.com/mweegram/tickful/pkg/utils/logging"
	"github.com/mweegram/tickful/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var engineCfg config.Engine
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TICKFUL_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, seedQueues, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, usecase.WithConfig(engine))

			if err := uc.Directory.Bootstrap(ctx); err != nil {
				return goerr.Wrap(err, "failed to bootstrap directory")
			}
			if err := ensureQueues(ctx, uc, seedQueues); err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", repoCfg.Backend())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// ensureQueues creates the configured seed queues that do not exist yet.
func ensureQueues(ctx context.Context, uc *usecase.UseCases, names []string) error {
	for _, name := range names {
		if _, err := uc.Directory.CreateQueue(ctx, name); err != nil {
			if errors.Is(err, usecase.ErrDuplicateName) {
				continue
			}
			return goerr.Wrap(err, "failed to seed queue", goerr.V("name", name))
		}
		logging.Default().Info("Seeded queue", "name", name)
	}
	return nil
}
