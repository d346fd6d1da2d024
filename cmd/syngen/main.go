package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"

	goversion "github.com/caarlos0/go-version"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/origadmin/syngen/internal/analyzer"
	"github.com/origadmin/syngen/internal/config"
	"github.com/origadmin/syngen/internal/core"
	"github.com/origadmin/syngen/internal/model"
	"github.com/origadmin/syngen/internal/planner"
	"github.com/origadmin/syngen/internal/template"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug   bool
		logFile string
		closer  io.Closer
	)
	rootCmd := &cobra.Command{
		Use:           config.Application,
		Short:         config.Description,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := setupLogging(cmd.ErrOrStderr(), debug, logFile)
			closer = c
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closer != nil {
				_ = closer.Close()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to a file where logs should be written. If empty, logs go to stderr.")

	rootCmd.AddCommand(generateCmd(), skeletonsCmd(), versionCmd())
	return rootCmd
}

// setupLogging installs the default slog handler. Warn and above are logged
// unless debug is set.
func setupLogging(stderr io.Writer, debug bool, logFile string) (io.Closer, error) {
	var w io.Writer = stderr
	var closer io.Closer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", logFile)
		}
		w, closer = f, f
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

type generateOptions struct {
	configFile  string
	failFast    bool
	concurrency int
}

func generateCmd() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every artifact described by the project file and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "Project file")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first artifact that fails")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", runtime.NumCPU(), "Number of artifacts generated at once")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	skeletons := template.NewManager()
	for _, p := range cfg.Templates {
		if err := skeletons.Load(cfg.Resolve(p)); err != nil {
			return err
		}
	}

	var decls []*model.TypeDecl
	for _, src := range cfg.Sources {
		found, err := analyzer.Load(ctx, cfg.Resolve(src.Dir), src.Patterns...)
		if err != nil {
			return err
		}
		decls = append(decls, found...)
	}

	jobs, err := planner.Plan(cfg, decls...)
	if err != nil {
		return err
	}
	gen, err := core.NewGenerator(cfg.Language, skeletons)
	if err != nil {
		return err
	}
	slog.Info("Starting syngen", "config", opts.configFile, "language", cfg.Language, "jobs", len(jobs))

	results, runErr := core.Run(ctx, gen, jobs, core.Options{Concurrency: opts.concurrency, FailFast: opts.failFast})

	out := cmd.OutOrStdout()
	header := color.New(color.FgCyan, color.Bold)
	for _, r := range results {
		if r.Err != nil || r.Output == "" {
			continue
		}
		header.Fprintf(out, "==> %s\n", path.Join(cfg.Output, r.Job.Path))
		fmt.Fprintln(out, r.Output)
	}

	failed := core.Failed(results)
	for _, r := range failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", color.New(color.FgRed).Sprint("FAIL"), r.Job.Path, r.Err)
	}
	if runErr != nil {
		return runErr
	}
	if len(failed) > 0 {
		return errors.Newf("%d of %d artifacts failed", len(failed), len(results))
	}
	return nil
}

func skeletonsCmd() *cobra.Command {
	var dirs []string
	cmd := &cobra.Command{
		Use:   "skeletons",
		Short: "List the skeletons available to files entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := template.NewManager()
			if err := m.Load(dirs...); err != nil {
				return err
			}
			for _, name := range m.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&dirs, "templates", nil, "Extra skeleton files or directories")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion(version, commit, date, builtBy, treeState).String())
		},
	}
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
