package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jot/internal/config"
	"github.com/gorewood/jot/internal/envfile"
	"github.com/gorewood/jot/internal/git"
	"github.com/gorewood/jot/internal/invoke"
	"github.com/gorewood/jot/internal/notes"
	"github.com/gorewood/jot/internal/output"
	"github.com/gorewood/jot/internal/runner"
	"github.com/gorewood/jot/internal/sync"
)

// rootOptions holds the persistent flag values. Config fields are applied on
// top of the config file only when their flag was set explicitly.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	flags      config.Config
}

// bindFlags registers the persistent flags on the root command.
func (o *rootOptions) bindFlags(cmd *cobra.Command) {
	defaults := config.Default()
	pf := cmd.PersistentFlags()

	pf.Bool("json", false, "Output status in JSON format")
	pf.String("color", "auto", "Color output: auto, always, never")
	pf.StringVar(&o.configPath, "config", "", "Config file (default <config dir>/config.yaml)")
	pf.StringVar(&o.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&o.logFormat, "log-format", "text", "Log format (text, json)")

	pf.StringVarP(&o.flags.BaseDir, "base-dir", "b", "", "Git repository holding the notes")
	pf.StringVarP(&o.flags.Finder, "finder", "f", "", "Shell invocation printing the path of a note")
	pf.StringVarP(&o.flags.Lister, "lister", "l", "", "Shell invocation listing notes; the path is appended")
	pf.StringVar(&o.flags.Shell, "shell", "", "Shell running finder and lister (default $SHELL)")
	pf.StringVarP(&o.flags.ShellCmdFlag, "shell-cmd-flag", "s", defaults.ShellCmdFlag, "Flag making the shell run a command line")
	pf.StringVar(&o.flags.GitRemoteName, "git-remote-name", defaults.GitRemoteName, "Remote to sync with")
	pf.StringVar(&o.flags.GitUpstreamBranch, "git-upstream-branch", defaults.GitUpstreamBranch, "Branch to sync with")
	pf.BoolVar(&o.flags.GitCustomCommitMsg, "git-custom-commit-msg", defaults.GitCustomCommitMsg, "Write sync commit messages in the git editor")
	pf.BoolVarP(&o.flags.CaptureStd, "capture-std", "c", defaults.CaptureStd, "Capture stdin and stderr of finder and lister")
	pf.BoolVarP(&o.flags.EditSyncs, "edit-syncs", "e", defaults.EditSyncs, "Sync after every edit")
	pf.BoolVarP(&o.flags.QuietOnCtrlC, "quiet-on-ctrl-c", "q", defaults.QuietOnCtrlC, "Exit silently when a child is interrupted")
	pf.BoolVar(&o.flags.ContainPaths, "contain-paths", defaults.ContainPaths, "Reject note paths outside the base dir")
}

// applyFlags copies explicitly set flags onto cfg.
func (o *rootOptions) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	setString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}

	setString("base-dir", &cfg.BaseDir, o.flags.BaseDir)
	setString("finder", &cfg.Finder, o.flags.Finder)
	setString("lister", &cfg.Lister, o.flags.Lister)
	setString("shell", &cfg.Shell, o.flags.Shell)
	setString("shell-cmd-flag", &cfg.ShellCmdFlag, o.flags.ShellCmdFlag)
	setString("git-remote-name", &cfg.GitRemoteName, o.flags.GitRemoteName)
	setString("git-upstream-branch", &cfg.GitUpstreamBranch, o.flags.GitUpstreamBranch)
	setBool("git-custom-commit-msg", &cfg.GitCustomCommitMsg, o.flags.GitCustomCommitMsg)
	setBool("capture-std", &cfg.CaptureStd, o.flags.CaptureStd)
	setBool("edit-syncs", &cfg.EditSyncs, o.flags.EditSyncs)
	setBool("quiet-on-ctrl-c", &cfg.QuietOnCtrlC, o.flags.QuietOnCtrlC)
	setBool("contain-paths", &cfg.ContainPaths, o.flags.ContainPaths)
}

// app is the wired set of components one command invocation uses.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	runner     *runner.ExecRunner
	dispatcher *notes.Dispatcher
}

// loadApp builds the configuration and every component from the config
// file, the env file, the environment and the flags.
func (o *rootOptions) loadApp(cmd *cobra.Command) (*app, error) {
	logger, err := setupLogger(o.logLevel, o.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	if _, err := output.ParseColorMode(colorMode(cmd)); err != nil {
		return nil, output.NewUserError(err.Error())
	}

	path, required := o.configPath, cmd.Flags().Changed("config")
	if path == "" {
		path = config.DefaultFile()
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	o.applyFlags(cmd, &cfg)

	env, added, err := envfile.Merge(os.Environ(), config.EnvFile())
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	if len(added) > 0 {
		logger.Debug("loaded env file fallbacks", "path", config.EnvFile(), "keys", strings.Join(added, ","))
	}
	getenv := func(key string) string { return envfile.Lookup(env, key) }

	cfg, err = cfg.Finalize(getenv)
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, output.NewUserError(err.Error())
	}
	logger.Debug("configuration loaded", "config_file", path, "base_dir", cfg.BaseDir)

	r := runner.NewExecRunner(cfg.BaseDir, env, logger)
	engine := sync.NewEngine(cfg, git.NewRepo(r), logger)
	dispatcher := notes.NewDispatcher(cfg, notes.Deps{
		Resolver: invoke.NewResolver(cfg, r, logger),
		Runner:   r,
		Syncer:   engine,
		Editor:   getenv("EDITOR"),
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
	})

	return &app{
		cfg:        cfg,
		logger:     logger,
		runner:     r,
		dispatcher: dispatcher,
	}, nil
}

// setupLogger creates a logger writing to w, which is stderr in practice;
// stdout is reserved for note listings and status output.
func setupLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (use text or json)", format)
	}
}
