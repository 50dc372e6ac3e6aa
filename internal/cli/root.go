package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlink/internal/config"
	"gitlink/internal/forge"
	"gitlink/internal/git"
	"gitlink/internal/link"
	"gitlink/internal/logging"
	"gitlink/internal/model"
	"gitlink/internal/notify"
)

// Version is set at build time with -ldflags "-X gitlink/internal/cli.Version=...".
var Version = "dev"

// app holds what the commands share; tests swap the side effects.
type app struct {
	v         *viper.Viper
	cfgFile   string
	verbose   bool
	noCopy    bool
	line      int
	out       io.Writer
	errOut    io.Writer
	clipboard notify.Clipboard
	openURL   notify.URLOpener
}

// reportedError marks a failure the user has already been shown.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Execute runs the gitlink command line.
func Execute() error {
	a := &app{
		v:         viper.New(),
		out:       os.Stdout,
		errOut:    os.Stderr,
		clipboard: notify.SystemClipboard{},
		openURL:   notify.OpenURL,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := a.rootCmd().ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gitlink [file]",
		Short: "Copy a web link to a line of a file in a git repository",
		Long: `gitlink builds the GitHub or GitLab URL for a line of a tracked file,
using the repository's remote (origin by default) and the current branch,
or the commit hash when HEAD is detached, and copies it to the clipboard.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runGenerate,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/gitlink/config.yaml)")
	flags.IntVarP(&a.line, "line", "l", 1, "1-based line number")
	flags.StringSliceP("workspace", "w", nil, "workspace folder (repeatable; default is the current directory)")
	flags.String("remote", config.DefaultRemote, "preferred remote name")
	flags.String("backend", config.DefaultBackend, "git backend: exec or gogit")
	flags.Duration("timeout", config.DefaultTimeout, "timeout for git queries")
	flags.Bool("open", false, "open the link in the browser")
	flags.BoolVar(&a.noCopy, "no-copy", false, "print the link without copying it")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	_ = a.v.BindPFlag("workspace.folders", flags.Lookup("workspace"))
	_ = a.v.BindPFlag("remote.preferred", flags.Lookup("remote"))
	_ = a.v.BindPFlag("vcs.backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("vcs.timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("browser.open", flags.Lookup("open"))

	root.AddCommand(a.tuiCmd(), a.versionCmd())
	return root
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	n := &notify.Terminal{Out: a.out, Err: a.errOut}

	cfg, log, err := a.load()
	if err != nil {
		n.Error("Error: " + err.Error())
		return reportedError{err}
	}

	svc, err := a.service(cfg, log, n)
	if err != nil {
		n.Error("Error: " + err.Error())
		return reportedError{err}
	}

	ec, err := a.editorContext(args, cfg)
	if err != nil {
		n.Error("Error: " + err.Error())
		return reportedError{err}
	}

	if _, err := svc.Run(cmd.Context(), ec); err != nil {
		return reportedError{err}
	}
	return nil
}

func (a *app) load() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if a.noCopy {
		cfg.Clipboard.Enabled = false
	}
	log := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  a.errOut,
		Verbose: a.verbose,
	})
	return cfg, log, nil
}

func (a *app) service(cfg *config.Config, log *logging.Logger, n notify.Notifier) (*link.Service, error) {
	open, err := git.OpenerFor(cfg.VCS.Backend)
	if err != nil {
		return nil, err
	}

	svc := &link.Service{
		Gatherer: &link.Gatherer{
			Open:            open,
			PreferredRemote: cfg.Remote.Preferred,
			Log:             log.WithComponent("gather"),
		},
		Resolver: forge.Default(),
		Notifier: n,
		Timeout:  cfg.VCS.Timeout,
		Log:      log,
	}
	if cfg.Clipboard.Enabled {
		svc.Clipboard = a.clipboard
	}
	if cfg.Browser.Open {
		svc.OpenURL = a.openURL
	}
	return svc, nil
}

// editorContext builds the ambient state from the arguments. A missing
// file or a line below 1 is left for the gatherer to reject.
func (a *app) editorContext(args []string, cfg *config.Config) (model.EditorContext, error) {
	ec := model.EditorContext{CursorLine: a.line - 1}

	if len(args) > 0 && args[0] != "" {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return ec, err
		}
		ec.FilePath = abs
	}

	folders := cfg.Workspace.Folders
	if len(folders) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return ec, err
		}
		folders = []string{wd}
	}
	for _, f := range folders {
		abs, err := filepath.Abs(f)
		if err != nil {
			return ec, err
		}
		ec.WorkspaceFolders = append(ec.WorkspaceFolders, abs)
	}
	return ec, nil
}
