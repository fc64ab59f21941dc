package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"PortfolioSentinel/internal/scheduler"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "regenerate the report on a fixed interval" }
func (*watchCmd) Usage() string {
	return `watch

  Regenerates the HTML report every UPDATE_FREQUENCY_HOURS until interrupted.
  With RUN_AT_START the first report is written immediately.
`
}

func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	sched := scheduler.NewScheduler(ctx, func(ctx context.Context) error {
		_, err := a.run(ctx, a.cfg.Report.Path)
		return err
	})
	if err := sched.Register(a.cfg.UpdateInterval()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sched.Start()

	if a.cfg.Schedule.RunAtStart {
		go sched.RunNow()
	}

	log.Info().Dur("interval", a.cfg.UpdateInterval()).Msg("sentinel is running, press Ctrl+C to stop")
	<-ctx.Done()

	log.Info().Msg("shutdown signal received, stopping")
	sched.Stop()
	return subcommands.ExitSuccess
}
