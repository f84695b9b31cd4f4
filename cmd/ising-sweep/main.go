// Command ising-sweep runs the Metropolis temperature sweep and writes the
// per-size results to stdout as YAML.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ising-mc/internal/config"
	"ising-mc/internal/logging"
	"ising-mc/internal/sweep"
)

func main() {
	config.BindFlags(pflag.CommandLine)
	pflag.Parse()

	if err := mainWithErr(pflag.CommandLine, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ising-sweep: %+v\n", err)
		os.Exit(1)
	}
}

func mainWithErr(fs *pflag.FlagSet, out io.Writer) error {
	opts, err := config.Load(fs)
	if err != nil {
		return err
	}
	logger, err := logging.New(opts.LogLevel, opts.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := sweep.NewMetrics(reg)
	if err != nil {
		return err
	}
	if opts.MetricsAddr != "" {
		srv := serveMetrics(opts.MetricsAddr, reg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	driver, err := sweep.New(opts.Sweep, sweep.WithLogger(logger), sweep.WithMetrics(metrics))
	if err != nil {
		return err
	}
	report, err := driver.Run()
	if err != nil {
		return errors.Wrap(err, "run")
	}
	return writeReport(out, report)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}

func writeReport(out io.Writer, report *sweep.Report) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encode report")
	}
	return errors.Wrap(enc.Close(), "encode report")
}
