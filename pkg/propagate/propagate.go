// Package propagate drives a ZOFE (or any other) derivative function through
// time with a classic fixed-step fourth-order Runge-Kutta scheme over complex
// state vectors. The numeric core it integrates is pure, so the driver owns
// all bookkeeping: sampling, statistics, cancellation and progress reporting.
package propagate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrConfig indicates an invalid propagation setup (bad step size or sample
// times).
var ErrConfig = errors.New("propagate: invalid configuration")

// Config controls a propagation run.
type Config struct {
	// Step is the maximum internal integration step. The driver subdivides
	// each sampling interval into equal steps no larger than this.
	Step float64

	// Observer, if set, is called after every recorded sample with the
	// current progress. Useful to feed metrics during multi-hour runs.
	Observer Observer
}

// Observer receives progress updates during a run.
type Observer func(p Progress)

// Progress is a snapshot of a running propagation.
type Progress struct {
	RunID       string
	Time        float64
	Steps       uint64
	Evaluations uint64
	// Fraction is the completed part of the requested time span, in [0, 1].
	Fraction float64
}

// Statistics summarizes the numerical work of a finished run.
type Statistics struct {
	// Steps is the number of internal RK4 steps taken.
	Steps uint64
	// Evaluations is the number of derivative-function calls (4 per step).
	Evaluations uint64
}

// Result is a completed trajectory: one recorded state per requested time.
type Result struct {
	// RunID uniquely identifies this run, for logs and metrics labels.
	RunID  string
	Times  []float64
	States [][]complex128
	Stats  Statistics
}

// RK4 integrates y' = f(t, y) from times[0] through times[len-1], recording
// the state at every entry of times. The initial state y0 is copied, never
// mutated. f must return a freshly allocated derivative vector on every call
// (as zofe.Model.EquationOfMotion does); it must not alias its input.
// Cancelling the context aborts the run and returns the context error.
func RK4(ctx context.Context, f func(t float64, y []complex128) []complex128,
	y0 []complex128, times []float64, cfg Config) (*Result, error) {

	if cfg.Step <= 0 {
		return nil, fmt.Errorf("propagate: step size %g must be positive: %w", cfg.Step, ErrConfig)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("propagate: no sample times: %w", ErrConfig)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("propagate: sample times must be strictly increasing at index %d: %w",
				i, ErrConfig)
		}
	}

	res := &Result{
		RunID:  uuid.New().String(),
		Times:  times,
		States: make([][]complex128, 0, len(times)),
	}
	span := times[len(times)-1] - times[0]

	y := append([]complex128(nil), y0...)
	res.States = append(res.States, append([]complex128(nil), y...))
	notify(cfg.Observer, res, times[0], span)

	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		substeps := int(math.Ceil(dt / cfg.Step))
		h := dt / float64(substeps)
		t := times[i-1]
		for k := 0; k < substeps; k++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rk4Step(f, t, h, y)
			t += h
			res.Stats.Steps++
			res.Stats.Evaluations += 4
		}
		res.States = append(res.States, append([]complex128(nil), y...))
		notify(cfg.Observer, res, times[i], span)
	}
	return res, nil
}

func notify(obs Observer, res *Result, t, span float64) {
	if obs == nil {
		return
	}
	fraction := 1.0
	if span > 0 {
		fraction = (t - res.Times[0]) / span
	}
	obs(Progress{
		RunID:       res.RunID,
		Time:        t,
		Steps:       res.Stats.Steps,
		Evaluations: res.Stats.Evaluations,
		Fraction:    fraction,
	})
}

// rk4Step advances y in place by one step of size h.
func rk4Step(f func(t float64, y []complex128) []complex128, t, h float64, y []complex128) {
	n := len(y)
	k1 := f(t, y)

	tmp := make([]complex128, n)
	for i := range tmp {
		tmp[i] = y[i] + complex(h/2, 0)*k1[i]
	}
	k2 := f(t+h/2, tmp)

	for i := range tmp {
		tmp[i] = y[i] + complex(h/2, 0)*k2[i]
	}
	k3 := f(t+h/2, tmp)

	for i := range tmp {
		tmp[i] = y[i] + complex(h, 0)*k3[i]
	}
	k4 := f(t+h, tmp)

	for i := range y {
		y[i] += complex(h/6, 0) * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
}

// Linspace returns count evenly spaced sample times from start to end
// inclusive. A convenience for building the times argument of RK4.
func Linspace(start, end float64, count int) []float64 {
	if count < 2 {
		return []float64{start}
	}
	out := make([]float64, count)
	step := (end - start) / float64(count-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[count-1] = end
	return out
}
