package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/timer"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a session clock without the UI",
	Long:  "Run a practice session on the real clock, printing the time left and the current task every second.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
		log = log.With(zap.String("session", uuid.NewString()))

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		var mu sync.Mutex
		sched := timer.NewLockedScheduler(timer.NewTickerScheduler(nil), &mu)
		t, err := timer.New(cat, sched, cfg.Difficulty, log)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		done := make(chan struct{})
		var once sync.Once
		// Observers run under mu, on the scheduler goroutine after Start.
		t.OnChange(func(s timer.State) {
			printClock(out, t)
			if s.Done() {
				once.Do(func() { close(done) })
			}
		})

		mu.Lock()
		fmt.Fprintf(out, "%s session, %s total\n", cfg.Difficulty, t.Clock())
		for _, e := range t.Tasks() {
			fmt.Fprintf(out, "  %s\n", e.Label())
		}
		t.Start()
		mu.Unlock()

		select {
		case <-done:
			fmt.Fprintln(out)
			log.Info("watch session complete")
			return nil
		case <-ctx.Done():
			mu.Lock()
			t.Pause()
			mu.Unlock()
			fmt.Fprintln(out)
			log.Info("watch interrupted", zap.String("remaining", t.Clock()))
			return nil
		}
	},
}

func printClock(w io.Writer, t *timer.Timer) {
	line := fmt.Sprintf("%s  %s", t.Clock(), t.CurrentTaskLabel())
	if s := t.State(); !s.Done() {
		line += fmt.Sprintf(" (%s left)", t.TaskClock())
	}
	fmt.Fprintf(w, "\r\033[K%s", line)
}
