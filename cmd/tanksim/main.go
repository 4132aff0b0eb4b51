package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/tickx"
	"github.com/comalice/tickx/examples/tank"
	"github.com/comalice/tickx/internal/config"
	"github.com/comalice/tickx/internal/extensibility"
	"github.com/comalice/tickx/internal/production"
	"github.com/comalice/tickx/realtime"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tanksim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("tanksim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	scriptPath := fs.String("script", "", "path to a YAML list of scripted valve commands")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	var script []config.ValveCommand
	if *scriptPath != "" {
		if script, err = config.LoadScript(*scriptPath, cfg.Tank.Count); err != nil {
			return err
		}
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	metrics, err := production.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	notices := make(chan production.ChangeNotice, 64)
	publisher := production.NewChannelPublisher(notices)

	var monitor *tank.Monitor
	rt, err := realtime.NewRuntime(func(s realtime.Scheduler) (realtime.Application, error) {
		m, err := tank.New(s, tank.Config{
			Tanks:         cfg.Tank.Count,
			Capacity:      cfg.Tank.Capacity,
			OverflowLevel: cfg.Tank.OverflowLevel,
			PollPeriod:    realtime.Tick(cfg.Tank.PollPeriod),
			InflowRate:    cfg.Tank.InflowRate,
			DrainRate:     cfg.Tank.DrainRate,
			Logger:        logger,
			StoreOptions: []tickx.StoreOption{
				tickx.WithLogger(logger),
				tickx.WithObserver(metrics),
				tickx.WithMaxDepth(cfg.MaxDepth),
			},
			Decorate: func(name string, l tickx.Listener) tickx.Listener {
				return extensibility.NewLoggingListener(name, l, logger)
			},
		})
		if err != nil {
			return nil, err
		}
		monitor = m
		return m, nil
	}, realtime.Config{Logger: logger, Observer: metrics})
	if err != nil {
		return err
	}

	store := monitor.Store()
	store.Attach(publisher)
	store.Attach(extensibility.NewGuardedListener(monitor.Overflowing, tickx.ListenerFunc(func(v tickx.View) []tickx.Message {
		logger.Warn("tank at overflow level", "uptime", rt.Uptime())
		return nil
	})))

	if len(script) > 0 {
		entries := make([]extensibility.ReplayEntry, 0, len(script))
		for _, c := range script {
			entries = append(entries, extensibility.ReplayEntry{
				At:      realtime.Tick(c.At),
				Message: tank.ValveCommanded{Tank: c.Tank, Open: c.Open},
			})
		}
		extensibility.ScheduleReplay(rt, store, entries)
		logger.Info("valve script armed", "commands", len(entries))
	}

	runErr := rt.Run(ctx, cfg.Frequency, cfg.Duration)

	if err := publisher.Close(); err != nil {
		return err
	}
	published := 0
	for range notices {
		published++
	}
	logger.Info("simulation finished",
		"uptime", rt.Uptime(),
		"status", monitor.Status(),
		"notices", published,
		"notices_dropped", publisher.Dropped(),
	)
	logMetrics(logger, reg)

	if cfg.SnapshotDir != "" {
		w, err := production.NewSnapshotWriter(cfg.SnapshotFormat, cfg.SnapshotDir)
		if err != nil {
			return err
		}
		fn, err := w.Write(context.WithoutCancel(ctx), production.NewSnapshot(rt.RunID(), uint64(rt.Uptime()), store))
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		logger.Info("snapshot written", "file", fn)
	}
	return runErr
}

func logMetrics(logger *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Error("gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue() + m.GetGauge().GetValue()
			attrs := []any{"metric", mf.GetName(), "value", value}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			logger.Info("metric", attrs...)
		}
	}
}
