package cli

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/sdkregen/internal/errors"
	"github.com/toyz/sdkregen/internal/registry"
	"github.com/toyz/sdkregen/internal/utils"
	"github.com/toyz/sdkregen/internal/utils/fileops"
)

// DispatchSummary reports what a run did
type DispatchSummary struct {
	Selected        int
	FilesRemoved    int
	Launched        int
	LaunchFailures  int
	CleanupFailures int
	ProcessFailures int
	Commands        []*Command
}

// Dispatcher resolves the selected projects and, for each one in order,
// cleans its generated sources and launches the generator
type Dispatcher struct {
	registry    *registry.Registry
	config      *Config
	cleaner     *Cleaner
	builder     *Builder
	executor    Executor
	paths       *fileops.PathValidator
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
}

// NewDispatcher creates a dispatcher. cfg must have been validated.
func NewDispatcher(reg *registry.Registry, cfg *Config, executor Executor, diagnostics *utils.DiagnosticSystem) *Dispatcher {
	return &Dispatcher{
		registry:    reg,
		config:      cfg,
		cleaner:     NewCleaner(diagnostics),
		builder:     NewBuilder(),
		executor:    executor,
		paths:       fileops.NewPathValidator(),
		diagnostics: diagnostics,
		reporter:    NewDiagnosticReporter(diagnostics),
	}
}

// Run dispatches every selected project. An unknown project name fails the
// run before anything is cleaned or launched. A cleanup failure skips that
// project and fails the run once the remaining projects are dispatched.
// Generators are not waited for unless Config.Await is set.
func (d *Dispatcher) Run(ctx context.Context) (*DispatchSummary, error) {
	summary := &DispatchSummary{}

	descriptors, err := d.registry.Resolve(d.config.Projects)
	if err != nil {
		return summary, err
	}
	summary.Selected = len(descriptors)

	failures := errors.NewMultipleErrors()
	exitErrs := make([]*errors.BaseError, len(descriptors))
	var waiters errgroup.Group
	var interrupted error

	for i, desc := range descriptors {
		if err := ctx.Err(); err != nil {
			interrupted = err
			d.diagnostics.Warn("Interrupted, %d project(s) not dispatched", len(descriptors)-i)
			break
		}

		if err := d.clean(desc, summary); err != nil {
			failures.Add(err)
			summary.CleanupFailures++
			d.reporter.ReportError(err)
			continue
		}

		cmd := d.builder.Build(desc, d.config)
		summary.Commands = append(summary.Commands, cmd)

		d.diagnostics.Info("Generating %q from spec file %s", desc.Name, desc.SpecLocation(d.config.SpecRoot))
		d.diagnostics.Info("Command: %s", cmd)

		if d.config.DryRun {
			continue
		}

		proc, err := d.executor.Start(ctx, cmd)
		if err != nil {
			launchErr := errors.WrapLaunchError(desc.Name, err)
			summary.LaunchFailures++
			d.reporter.ReportError(launchErr)
			continue
		}
		summary.Launched++

		if d.config.Await {
			waiters.Go(func() error {
				if err := proc.Wait(); err != nil {
					exitErrs[i] = errors.WrapProcessExitError(desc.Name, err)
					return exitErrs[i]
				}
				return nil
			})
		}
	}

	if d.config.Await && summary.Launched > 0 {
		d.diagnostics.Verbose("Waiting for %d generator(s)", summary.Launched)
		if waiters.Wait() != nil {
			for _, err := range exitErrs {
				if err != nil {
					failures.Add(err)
					summary.ProcessFailures++
				}
			}
		}
	}

	if interrupted != nil {
		return summary, interrupted
	}
	return summary, failures.ErrOrNil()
}

// clean removes the previously generated sources of desc unless the run
// preserves them
func (d *Dispatcher) clean(desc registry.Descriptor, summary *DispatchSummary) *errors.BaseError {
	target := d.paths.Resolve(d.config.WorkDir, desc.CleanupTarget())

	if d.config.Preserve || d.config.DryRun {
		d.diagnostics.Verbose("Keeping existing sources in %s", target)
		return nil
	}

	result, err := d.cleaner.Clean(target, d.config.Marker)
	if err != nil {
		return errors.WrapCleanupError(desc.Name, target, err)
	}

	summary.FilesRemoved += len(result.Removed)
	d.diagnostics.Verbose("Removed %d of %d file(s) in %s", len(result.Removed), result.Scanned, target)
	return nil
}
