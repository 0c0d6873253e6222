package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mweegram/tickful/pkg/cli/config"
	"github.com/mweegram/tickful/pkg/usecase"
	"github.com/mweegram/tickful/pkg/utils/safe"
)

func cmdStats() *cli.Command {
	var engineCfg config.Engine
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "stats",
		Usage: "Print the operational dashboard snapshot",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engine, _, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load engine config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, usecase.WithConfig(engine))

			stats, err := uc.Analytics.Dashboard(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to compute dashboard")
			}
			overdue, err := uc.Analytics.UntakenOverdue(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to compute overdue tickets")
			}
			queues, err := uc.Analytics.BusiestQueues(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to compute queue volumes")
			}

			out := os.Stdout
			header := color.New(color.FgCyan, color.Bold)
			label := color.New(color.FgWhite)
			warn := color.New(color.FgYellow)

			header.Fprintln(out, "Dashboard")
			label.Fprintf(out, "  Generated at:           %s\n", stats.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
			label.Fprintf(out, "  Created (24h):          %d\n", stats.CreatedLastDay)
			label.Fprintf(out, "  False positive rate:    %d%%\n", stats.FalsePositiveRate)
			label.Fprintf(out, "  Avg response (24h):     %.1f min\n", stats.AvgResponseMinutes)
			label.Fprintf(out, "  Avg resolution (24h):   %.1f min\n", stats.AvgResolutionMinutes)
			label.Fprintf(out, "  Late pickups (24h):     %d\n", stats.LateTakeCount)

			if len(stats.TopAnalysts) > 0 {
				header.Fprintln(out, "Top analysts (24h)")
				for i, a := range stats.TopAnalysts {
					label.Fprintf(out, "  %d. %s (%d resolved)\n", i+1, a.Name, a.Resolved)
				}
			}

			if len(queues) > 0 {
				header.Fprintln(out, "Busiest queues (24h)")
				for _, q := range queues {
					label.Fprintf(out, "  %-24s %d\n", q.Name, q.Count)
				}
			}

			if len(overdue) > 0 {
				header.Fprintln(out, "SLA breaches (24h)")
				for _, o := range overdue {
					warn.Fprintf(out, "  ticket %s picked up after %.1f min\n", o.TicketID.String(), o.TakenMinutes)
				}
			} else {
				fmt.Fprintln(out)
				color.New(color.FgGreen).Fprintln(out, "No SLA breaches in the window")
			}

			return nil
		},
	}
}
