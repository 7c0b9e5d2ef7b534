package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/toyz/sdkregen/internal/cli"
	"github.com/toyz/sdkregen/internal/registry"
	"github.com/toyz/sdkregen/internal/utils"
)

// app carries what the commands share. Tests replace the writers and the
// executor factory.
type app struct {
	config      *cli.Config
	diagnostics *utils.DiagnosticSystem
	stdout      io.Writer
	stderr      io.Writer
	newExecutor func(runID string) cli.Executor

	verbose bool
	debug   bool
	quiet   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, func(runID string) cli.Executor {
		return cli.NewShellExecutor(runID)
	})
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, newExecutor func(string) cli.Executor) int {
	a := &app{
		stdout:      stdout,
		stderr:      stderr,
		newExecutor: newExecutor,
	}
	a.diagnostics = a.newDiagnostics(utils.DiagnosticInfo)

	cfg, err := cli.LoadConfig()
	if err != nil {
		a.reportError(err)
		return 1
	}
	a.config = cfg

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.reportError(err)
		return 1
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "sdkregen",
		Short:         "Regenerate Azure SDK projects with AutoRest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case a.quiet:
				a.diagnostics = a.newDiagnostics(utils.DiagnosticError)
			case a.debug:
				a.diagnostics = a.newDiagnostics(utils.DiagnosticDebug)
			case a.verbose:
				a.diagnostics = a.newDiagnostics(utils.DiagnosticVerbose)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printUsage(cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.config.Registry, "registry", a.config.Registry, "Project registry file (defaults to the built-in registry)")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable verbose output")
	flags.BoolVar(&a.debug, "debug", false, "Also report every file kept or removed during cleanup")
	flags.BoolVar(&a.quiet, "quiet", false, "Only show errors")

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		if err := a.printUsage(cmd.OutOrStdout()); err != nil {
			a.reportError(err)
		}
	})

	root.AddCommand(newCodegenCommand(a))
	return root
}

func newCodegenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codegen",
		Short: "Clean and regenerate the selected projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.codegen(cmd.Context())
		},
	}

	addCodegenFlags(cmd.Flags(), a.config)
	return cmd
}

func addCodegenFlags(flags *pflag.FlagSet, cfg *cli.Config) {
	flags.StringVar(&cfg.SpecRoot, "spec-root", cfg.SpecRoot, "Root location of Swagger API specs")
	flags.StringSliceVar(&cfg.Projects, "projects", cfg.Projects, "Comma separated projects to regenerate, default is all")
	flags.StringVar(&cfg.Autorest, "autorest", cfg.Autorest, "AutoRest version, or the location of an AutoRest repo")
	flags.StringVar(&cfg.AutorestArgs, "autorest-args", cfg.AutorestArgs, "Additional arguments passed to AutoRest")
	flags.StringVar(&cfg.AutorestJava, "autorest-java", cfg.AutorestJava, "Alternate AutoRest Java plugin, relative to --autorest")
	flags.BoolVar(&cfg.RegenerateManager, "regenerate-manager", cfg.RegenerateManager, "Regenerate the manager classes")
	flags.BoolVar(&cfg.Preserve, "preserve", cfg.Preserve, "Keep previously generated sources")
	flags.BoolVar(&cfg.Await, "await", cfg.Await, "Wait for every generator and fail if one fails")
	flags.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Print the generator commands without running them")
	flags.StringVar(&cfg.Marker, "marker", cfg.Marker, "Text identifying generated files during cleanup")
}

func (a *app) codegen(ctx context.Context) error {
	cfg := a.config
	cfg.Projects = cli.SplitProjects(cfg.Projects)
	if err := cfg.Validate(); err != nil {
		return err
	}

	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	a.diagnostics.Section("sdkregen")
	a.diagnostics.Verbose("Run ID: %s", cfg.RunID)
	a.diagnostics.Verbose("Spec root: %s", cfg.SpecRoot)
	a.diagnostics.Verbose("AutoRest: %s", cfg.Autorest)

	dispatcher := cli.NewDispatcher(reg, cfg, a.newExecutor(cfg.RunID), a.diagnostics)
	summary, err := dispatcher.Run(ctx)
	if err != nil && summary.Selected == 0 {
		return err
	}

	keys := []string{"Projects selected", "Generators launched", "Generated files removed"}
	stats := map[string]interface{}{
		"Projects selected":       summary.Selected,
		"Generators launched":     summary.Launched,
		"Generated files removed": summary.FilesRemoved,
	}
	if summary.LaunchFailures > 0 {
		keys = append(keys, "Launch failures")
		stats["Launch failures"] = summary.LaunchFailures
	}
	if summary.CleanupFailures > 0 {
		keys = append(keys, "Cleanup failures")
		stats["Cleanup failures"] = summary.CleanupFailures
	}
	if summary.ProcessFailures > 0 {
		keys = append(keys, "Generator failures")
		stats["Generator failures"] = summary.ProcessFailures
	}
	a.diagnostics.Summary("Dispatch complete", keys, stats)

	if err != nil {
		return err
	}

	switch {
	case cfg.DryRun:
		a.diagnostics.Success("Dry run finished, nothing was changed")
	case cfg.Await:
		a.diagnostics.Success("All generators finished")
	default:
		a.diagnostics.Success("Generators are running in the background")
	}
	return nil
}

func (a *app) loadRegistry() (*registry.Registry, error) {
	if a.config.Registry != "" {
		return registry.Load(a.config.Registry)
	}
	return registry.Default()
}

func (a *app) printUsage(w io.Writer) error {
	reg, err := a.loadRegistry()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Usage: sdkregen codegen [--spec-root <swagger specs root>] [--projects <project names>] [--autorest <autorest info>] [--autorest-args <AutoRest arguments>]\n\n")
	fmt.Fprintf(w, "--spec-root\n\tRoot location of Swagger API specs, default value is %q\n", cli.DefaultSpecRoot)
	fmt.Fprintf(w, "--projects\n\tComma separated projects to regenerate, default is all. List of available project names:\n")
	for _, name := range reg.Names() {
		fmt.Fprintf(w, "\t%s\n", a.diagnostics.ProjectName(name))
	}
	fmt.Fprintf(w, "--autorest\n\tThe version of AutoRest. E.g. 1.0.1-20170222-2300-nightly, or the location of AutoRest repo, E.g. E:\\repo\\autorest\n")
	fmt.Fprintf(w, "--autorest-args\n\tPasses additional argument to AutoRest generator\n")
	fmt.Fprintf(w, "--autorest-java\n\tLocation of an alternate AutoRest Java plugin, relative to --autorest\n")
	fmt.Fprintf(w, "--regenerate-manager\n\tRegenerate the manager classes\n")
	fmt.Fprintf(w, "--preserve\n\tKeep previously generated sources instead of deleting them\n")
	fmt.Fprintf(w, "--await\n\tWait for every generator and exit non-zero if one fails\n")
	fmt.Fprintf(w, "--dry-run\n\tPrint the generator commands without cleaning or running anything\n")
	fmt.Fprintf(w, "\nEvery option can also be set through %s* environment variables, e.g. %sSPEC_ROOT.\n", cli.EnvPrefix, cli.EnvPrefix)
	return nil
}

func (a *app) newDiagnostics(level utils.DiagnosticLevel) *utils.DiagnosticSystem {
	d := utils.NewDiagnosticSystem(level)
	if a.stdout != io.Writer(os.Stdout) || a.stderr != io.Writer(os.Stderr) {
		d.WithWriters(a.stdout, a.stderr)
	}
	return d
}

func (a *app) reportError(err error) {
	cli.NewDiagnosticReporter(a.diagnostics).ReportError(err)
}
