// Package cli builds the command line shared by the freshen and compact
// executables. Both take the same flags and positional repository filters and
// differ only in the operation they run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/freshen/internal/batch"
	"github.com/raphi011/freshen/internal/config"
	"github.com/raphi011/freshen/internal/git"
	"github.com/raphi011/freshen/internal/install"
	"github.com/raphi011/freshen/internal/log"
	"github.com/raphi011/freshen/internal/output"
	"github.com/raphi011/freshen/internal/repoconf"
	"github.com/raphi011/freshen/internal/runlock"
	"github.com/raphi011/freshen/internal/runner"
	"github.com/raphi011/freshen/internal/ui/static"
	"github.com/raphi011/freshen/internal/ui/styles"
)

// BuildInfo is the version information stamped into an executable.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String(name string) string {
	commit := b.Commit
	return fmt.Sprintf("%s %s (%s, %s, %s)", name, b.Version, commit[:min(7, len(commit))], b.Date, runtime.Version())
}

// Streams are the standard streams of one invocation.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

type flags struct {
	repoConf   string
	logfile    string
	verbose    bool
	quiet      bool
	jsonOutput bool
	completion string
}

// reportedError marks an error that was already logged and printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Execute runs the command for op against the process arguments and
// environment and returns the exit code.
func Execute(op runner.Operation, info BuildInfo) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return Run(ctx, op, info, os.Args[1:], Streams{Stdout: os.Stdout, Stderr: os.Stderr}, os.Environ())
}

// Run runs the command for op with the given arguments and returns the exit
// code.
func Run(ctx context.Context, op runner.Operation, info BuildInfo, args []string, streams Streams, environ []string) int {
	code := batch.ExitOK
	cmd := newCommand(op, info, streams, environ, &code)
	cmd.SetArgs(args)
	cmd.SetOut(streams.Stdout)
	cmd.SetErr(streams.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return code
	}

	var reported reportedError
	if errors.As(err, &reported) {
		if code != batch.ExitOK {
			return code
		}
		return batch.ExitConfig
	}
	fmt.Fprintf(streams.Stderr, "Error: %v\n", err)
	fmt.Fprintf(streams.Stderr, "Run '%s -h' for help\n", cmd.Name())
	return batch.ExitConfig
}

func newCommand(op runner.Operation, info BuildInfo, streams Streams, environ []string, code *int) *cobra.Command {
	var f flags
	name := string(op)

	cmd := &cobra.Command{
		Use:           name + " [flags] [repo ...]",
		Short:         short(op),
		Long:          long(op),
		Args:          cobra.ArbitraryArgs,
		Version:       info.String(name),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: fmt.Sprintf(`  %[1]s                      # all repositories in ~/.repos.ini
  %[1]s nova glance          # only these two
  %[1]s -c ./repos.ini -v    # another repository file, show commands
  %[1]s --json               # machine-readable summary`, name),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeRepos(f.repoConf, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.completion != "" {
				return genCompletion(cmd, f.completion, streams.Stdout)
			}
			c, err := run(cmd.Context(), op, f, args, streams, environ)
			*code = c
			return err
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.Flags().StringVarP(&f.repoConf, "repo-conf", "c", "", "Repository file (default $"+config.EnvRepoConf+", repo_conf setting, or "+config.DefaultRepoConf+")")
	cmd.Flags().StringVarP(&f.logfile, "logfile", "l", "", "Log file (default [repos] logfile, or "+repoconf.DefaultLogfile+")")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Show external commands and their output")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Only print warnings and errors")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print the summary as JSON")
	cmd.Flags().StringVar(&f.completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	_ = cmd.MarkFlagFilename("repo-conf", "ini")
	_ = cmd.MarkFlagFilename("logfile", "log")
	_ = cmd.RegisterFlagCompletionFunc("completion", cobra.FixedCompletions(
		[]string{"bash", "zsh", "fish", "powershell"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func run(ctx context.Context, op runner.Operation, f flags, filter []string, streams Streams, environ []string) (int, error) {
	logger := log.New(streams.Stderr, f.verbose, f.quiet)

	cfg, err := config.Load()
	if err != nil {
		logger.Warnf("%v", err)
	}

	if err := git.CheckGit(); err != nil {
		return batch.ExitConfig, fail(logger, f.logfile, err)
	}

	path, err := cfg.RepoConfPath(f.repoConf)
	if err != nil {
		return batch.ExitConfig, fail(logger, f.logfile, err)
	}

	rc, err := repoconf.Load(path)
	if err != nil {
		return batch.ExitConfig, fail(logger, f.logfile, err)
	}

	logfile := rc.Logfile
	if f.logfile != "" {
		if logfile, err = config.ExpandPath(f.logfile); err != nil {
			return batch.ExitConfig, fail(logger, "", err)
		}
	}

	file, err := log.OpenFile(logfile)
	if err != nil {
		return batch.ExitConfig, fail(logger, "", err)
	}
	defer file.Close()

	logger = logger.WithFile(file, "")
	ctx = log.WithLogger(ctx, logger)
	logger.Debug("starting run", "repo_conf", rc.RepoConfPath, "logfile", logfile, "repos", len(rc.Repos))

	lock := runlock.New(runlock.PathFor(logfile))
	ok, err := lock.TryLock()
	if err != nil {
		logger.Errorf("lock %s: %v", lock.Path(), err)
		return batch.ExitConfig, reportedError{err}
	}
	if !ok {
		logger.Warnf("another run is using %s, waiting for it to finish", logfile)
		if err := lock.Wait(ctx); err != nil {
			logger.Errorf("gave up waiting for %s: %v", lock.Path(), err)
			return batch.ExitFailed, reportedError{err}
		}
	}
	defer lock.Unlock()

	styles.Init(output.NoColor(streams.Stdout, environ))
	printer := output.NewTerminal(streams.Stdout, environ)
	ctx = output.WithPrinter(ctx, printer)

	r := runner.New(
		git.Client{ForcePush: cfg.ForcePush()},
		install.New(cfg.Install.Command),
		runner.Options{PreFetch: cfg.PreFetch()},
	)
	summary := batch.New(r, logger).Run(ctx, op, rc.Repos, filter)

	if err := printSummary(ctx, summary, f.jsonOutput); err != nil {
		logger.Errorf("%v", err)
		return batch.ExitFailed, nil
	}
	return summary.ExitCode(), nil
}

func printSummary(ctx context.Context, s batch.Summary, jsonOutput bool) error {
	p := output.FromContext(ctx)
	if jsonOutput {
		return p.JSON(s)
	}
	p.Print(static.RenderSummary(s.Results, s.Unknown))
	return nil
}

// fail reports a fatal error on the terminal and, when possible, in the log
// file: logfile when given, then the [repos] logfile if the repository file
// got that far, the default log file otherwise.
func fail(logger *log.Logger, logfile string, err error) error {
	var cerr *repoconf.ConfigError
	if logfile == "" && errors.As(err, &cerr) {
		logfile = cerr.Logfile
	}
	if logfile == "" {
		logfile = repoconf.DefaultLogfile
	}
	if path, perr := config.ExpandPath(logfile); perr == nil {
		if file, ferr := log.OpenFile(path); ferr == nil {
			defer file.Close()
			logger = logger.WithFile(file, "")
		}
	}
	logger.Errorf("%v", err)
	return reportedError{err}
}

func genCompletion(cmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return cmd.GenBashCompletionV2(w, true)
	case "zsh":
		return cmd.GenZshCompletion(w)
	case "fish":
		return cmd.GenFishCompletion(w, true)
	case "powershell":
		return cmd.GenPowerShellCompletionWithDesc(w)
	}
	return fmt.Errorf("unsupported shell %q (want bash, zsh, fish, or powershell)", shell)
}

func short(op runner.Operation) string {
	if op == runner.Compact {
		return "Garbage-collect configured git repositories"
	}
	return "Pull, push, and reinstall configured git repositories"
}

func long(op runner.Operation) string {
	if op == runner.Compact {
		return `compact runs git gc in every repository listed in the repository file,
or only in the repositories named on the command line.

A failing repository is reported and the remaining ones are still processed.
The exit code is non-zero when any repository failed or any named repository
is not configured.`
	}
	return `freshen pulls the configured branch of every repository listed in the
repository file, then pushes it and reinstalls the package when the
repository is configured to. Naming repositories on the command line limits
the run to those.

A failing repository is reported and the remaining ones are still processed.
The exit code is non-zero when any repository failed or any named repository
is not configured.`
}
