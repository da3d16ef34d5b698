package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"swapkern/internal/metrics"
)

func newServeCmd() *cobra.Command {
	var (
		t        tunables
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a continuous pressure-check loop and serve its metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(t, addr, interval)
		},
	}

	fs := cmd.Flags()
	bindTunables(fs, &t)
	fs.StringVar(&addr, "listen", ":9400", "address to serve /metrics on")
	fs.DurationVar(&interval, "interval", time.Second, "how often to poll check_pressure")

	return cmd
}

func serve(t tunables, addr string, interval time.Duration) error {
	h, closeFn, err := newHarness(t, nil)
	if err != nil {
		return err
	}
	defer closeFn()

	collector := metrics.New(h.sub.Slots.FreeCount)
	reg := prometheus.NewRegistry()
	collector.MustRegister(reg)
	h.sub.SetRecorder(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			_ = h.sub.CheckPressure(h.procs)
		}
	}()

	fmt.Printf("serving metrics on %s/metrics\n", addr)
	return http.ListenAndServe(addr, mux)
}
