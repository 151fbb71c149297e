// Package pipeline runs the asset build steps in their fixed order and
// records what each step wrote.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/udisondev/assetpack/internal/config"
	"github.com/udisondev/assetpack/internal/stylesheet"
	"github.com/udisondev/assetpack/internal/telemetry"
)

// AllSteps selects every registered step, including the ones not run by default.
const AllSteps = "all"

// ErrUnknownStep is returned by Select for a name no step is registered under.
var ErrUnknownStep = errors.New("unknown step")

// Env carries what steps need to run.
type Env struct {
	Config config.Pack
	Packer stylesheet.Packer
}

// StepFunc performs one build step and returns the paths it wrote.
type StepFunc func(ctx context.Context, env *Env) ([]string, error)

// Step is a named build step.
type Step struct {
	Name    string
	Desc    string
	Default bool // part of a run without explicit step names
	Run     StepFunc
}

// Registry keeps steps in registration order, which is also run order.
type Registry struct {
	steps []Step
}

// Register appends a step.
func (r *Registry) Register(name, desc string, isDefault bool, fn StepFunc) {
	r.steps = append(r.steps, Step{Name: name, Desc: desc, Default: isDefault, Run: fn})
}

// Steps returns all registered steps in run order.
func (r *Registry) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// Select resolves step names. No names selects the default steps, AllSteps
// selects every step. Selected steps always run in registry order.
func (r *Registry) Select(names []string) ([]Step, error) {
	if len(names) == 0 {
		var out []Step
		for _, s := range r.steps {
			if s.Default {
				out = append(out, s)
			}
		}
		return out, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n == AllSteps {
			return r.Steps(), nil
		}
		if !r.has(n) {
			return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownStep, n, strings.Join(r.names(), ", "))
		}
		want[n] = true
	}

	var out []Step
	for _, s := range r.steps {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Registry) has(name string) bool {
	for _, s := range r.steps {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.steps))
	for _, s := range r.steps {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Run executes steps sequentially and stops at the first failure. The report
// covers every step that finished, including artifacts of earlier steps when
// a later one fails.
func Run(ctx context.Context, env *Env, steps []Step) (*Report, error) {
	tracer := telemetry.Tracer("pipeline")
	report := &Report{}
	totalStart := time.Now()

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		stepCtx, span := tracer.Start(ctx, "step "+s.Name)
		start := time.Now()
		slog.Info("step started", "step", s.Name)

		paths, err := s.Run(stepCtx, env)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return report, fmt.Errorf("step %s: %w", s.Name, err)
		}

		artifacts, err := Describe(paths)
		if err != nil {
			span.End()
			return report, fmt.Errorf("step %s: %w", s.Name, err)
		}
		took := time.Since(start).Round(time.Millisecond)
		span.SetAttributes(attribute.Int("artifacts", len(artifacts)))
		span.End()

		for _, a := range artifacts {
			slog.Debug("artifact", "step", s.Name, "path", a.Path, "size", a.Size, "blake2b", a.BLAKE2b)
		}
		slog.Info("step done", "step", s.Name, "artifacts", len(artifacts), "took", took)

		report.Steps = append(report.Steps, StepReport{
			Name:      s.Name,
			Took:      took.String(),
			Artifacts: artifacts,
		})
	}

	slog.Info("build done", "steps", len(steps), "took", time.Since(totalStart).Round(time.Millisecond))
	return report, nil
}
