package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanonone/zofe/internal/simconfig"
	"github.com/sanonone/zofe/pkg/metrics"
	"github.com/sanonone/zofe/pkg/propagate"
)

func main() {
	configPath := flag.String("config", "simulation.yaml", "Path of the simulation configuration file")
	outPath := flag.String("out", "populations.csv", "Path of the output CSV with state populations over time")
	metricsAddr := flag.String("metrics-addr", "", "Address for the Prometheus /metrics endpoint (e.g. :9092); empty disables it")

	flag.Parse()

	// Long simulations should die cleanly on Ctrl+C, so the whole run hangs
	// off a signal-cancelled context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("Serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}

	if err := run(ctx, *configPath, *outPath); err != nil {
		slog.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, outPath string) error {
	cfg, err := simconfig.Load(configPath)
	if err != nil {
		return err
	}
	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}
	slog.Info("Model built",
		"subspace", string(model.Subspace()),
		"n_states", model.NStates(),
		"state_vec_len", model.StateVecLen(),
	)

	eom, err := model.EquationOfMotion(false)
	if err != nil {
		return err
	}
	y0, err := model.ThermalState()
	if err != nil {
		return err
	}

	times := propagate.Linspace(cfg.Propagation.TStart, cfg.Propagation.TEnd, cfg.Propagation.Samples)
	result, err := propagate.RK4(ctx, eom, y0, times, propagate.Config{
		Step:     cfg.Propagation.Step,
		Observer: metrics.PropagationObserver(),
	})
	if err != nil {
		return err
	}
	slog.Info("Propagation finished",
		"run_id", result.RunID,
		"steps", result.Stats.Steps,
		"rhs_evaluations", result.Stats.Evaluations,
	)

	rhos, err := model.StateVectorToDensityMatrix(result.States)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("could not create output file '%s': %w", outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"t"}
	for i := 0; i < model.NStates(); i++ {
		header = append(header, "pop_"+strconv.Itoa(i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for k, rho := range rhos {
		row := []string{strconv.FormatFloat(result.Times[k], 'g', -1, 64)}
		for i := 0; i < model.NStates(); i++ {
			row = append(row, strconv.FormatFloat(real(rho.At(i, i)), 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	slog.Info("Wrote populations", "path", outPath, "samples", len(rhos))
	return nil
}
