package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/japaniel/lexiquest/pkg/api"
)

func newStatusCmd(get func() *app) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
		count    int
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the API service is reachable",
		Long: `Check whether the API service is reachable and which data source
quizzes will use. With --watch the check repeats until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			ctx := cmd.Context()

			check := func() api.Mode {
				mode := a.prober.Check(ctx)
				fmt.Fprintf(a.out, "%s  mode=%s\n", time.Now().Format(time.TimeOnly), mode)
				return mode
			}
			if !watch {
				check()
				return nil
			}

			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Status.WatchInterval
			}
			if a.probe != nil {
				a.probe.Watch(func(m api.Mode) {
					a.log.Debug("status observed", "mode", m.String())
				})
			}

			done := make(chan struct{})
			var (
				runs atomic.Int64
				once sync.Once
			)
			s := gocron.NewScheduler(time.UTC)
			if _, err := s.Every(interval).Do(func() {
				check()
				if count > 0 && runs.Add(1) >= int64(count) {
					once.Do(func() { close(done) })
				}
			}); err != nil {
				return fmt.Errorf("schedule status check: %w", err)
			}
			s.StartAsync()
			defer s.Stop()

			select {
			case <-ctx.Done():
			case <-done:
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking on an interval")
	cmd.Flags().DurationVar(&interval, "interval", 0, "time between checks with --watch (default from config)")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many checks with --watch (0 runs until interrupted)")
	return cmd
}
