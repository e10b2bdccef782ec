package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"topogen/internal/service"
	"topogen/internal/watcher"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Regenerate the inventory whenever the request, source or device specs change",
	Example: "topogen watch -o inventory/hosts.generated.yml --metrics-addr :9100",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		format, _ := flags.GetString("format")
		output, _ := flags.GetString("output")
		dbPath, _ := flags.GetString("db")
		metricsAddr, _ := flags.GetString("metrics-addr")
		debounce, _ := flags.GetDuration("debounce")

		e, err := setup(dbPath, true)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.source.Request == service.StdinPath {
			return errors.New("watch needs a request file, not stdin")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if metricsAddr != "" {
			srv := serveMetrics(ctx, metricsAddr, e)
			defer srv.Close()
		}

		events := make(chan service.Event, 16)
		e.generator.Events().Subscribe(events)
		go func() {
			for {
				select {
				case ev := <-events:
					e.logger.Debug("generator event", "type", ev.Type, "payload", ev.Payload)
				case <-ctx.Done():
					return
				}
			}
		}()

		regen := &regenerator{ctx: ctx, run: func(reload bool) {
			if reload {
				e.generator.Reload()
			}
			result, err := e.generator.Generate(ctx)
			if err != nil {
				// Keep the last good inventory in place
				e.logger.Error("generation failed", "error", err)
				return
			}
			if err := writeInventory(result.Inventory, format, output, cmd.OutOrStdout()); err != nil {
				e.logger.Error("write inventory", "error", err)
			}
		}}
		// Runs before e.Close, waiting out any generation in flight
		defer regen.stop()

		regen.trigger(false)

		w := watcher.New(e.generator.Inputs(), func() {
			regen.trigger(true)
		}, e.logger).WithDebounce(debounce)

		if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		e.logger.Info("shutting down")
		return nil
	},
}

// regenerator serializes watch-mode generations and drops triggers that
// arrive after cancellation or stop
type regenerator struct {
	mu      sync.Mutex
	stopped bool
	ctx     context.Context
	run     func(reload bool)
}

func (r *regenerator) trigger(reload bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || r.ctx.Err() != nil {
		return
	}
	r.run(reload)
}

// stop blocks until the current run, if any, finishes
func (r *regenerator) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

// serveMetrics exposes Prometheus metrics until ctx is done
func serveMetrics(ctx context.Context, addr string, e *env) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		e.logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics server", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	return srv
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("format", "f", "yaml", "output format: yaml, json")
	watchCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	watchCmd.Flags().String("db", "", "record a snapshot per generation in this SQLite database")
	watchCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")
	watchCmd.Flags().Duration("debounce", watcher.DefaultDebounce, "quiet period before regenerating")
}
