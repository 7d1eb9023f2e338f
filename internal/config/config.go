package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults for optional settings.
const (
	DefaultShellCmdFlag      = "-c"
	DefaultGitRemoteName     = "origin"
	DefaultGitUpstreamBranch = "main"
)

// Config is the jot configuration. It is built once at startup from the
// config file and flags and is read-only afterwards.
type Config struct {
	// BaseDir is the git repository root under which all notes reside.
	BaseDir string `yaml:"base_dir"`
	// Finder is a shell invocation that prints a single note path.
	Finder string `yaml:"finder"`
	// Lister is a shell invocation that, given a path relative to BaseDir,
	// prints a listing.
	Lister string `yaml:"lister"`

	Shell        string `yaml:"shell"`
	ShellCmdFlag string `yaml:"shell_cmd_flag"`

	GitRemoteName      string `yaml:"git_remote_name"`
	GitUpstreamBranch  string `yaml:"git_upstream_branch"`
	GitCustomCommitMsg bool   `yaml:"git_custom_commit_msg"`

	// CaptureStd captures stdin and stderr of finder/lister invocations
	// instead of inheriting them.
	CaptureStd   bool `yaml:"capture_std"`
	EditSyncs    bool `yaml:"edit_syncs"`
	QuietOnCtrlC bool `yaml:"quiet_on_ctrl_c"`
	// ContainPaths rejects note paths that resolve outside BaseDir.
	ContainPaths bool `yaml:"contain_paths"`
}

// Default returns a Config with every optional setting at its default.
func Default() Config {
	return Config{
		ShellCmdFlag:      DefaultShellCmdFlag,
		GitRemoteName:     DefaultGitRemoteName,
		GitUpstreamBranch: DefaultGitUpstreamBranch,
		EditSyncs:         true,
		ContainPaths:      true,
	}
}

// Load reads the YAML config file at path on top of the defaults.
// A missing file yields the defaults unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(os.ExpandEnv(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Finalize fills environment fallbacks and normalizes paths.
// getenv is usually os.Getenv.
func (c Config) Finalize(getenv func(string) string) (Config, error) {
	if c.Shell == "" {
		c.Shell = getenv("SHELL")
	}
	if c.BaseDir != "" {
		dir, err := ExpandPath(c.BaseDir, getenv)
		if err != nil {
			return c, err
		}
		c.BaseDir = dir
	}
	return c, nil
}

// Validate checks the settings every operation depends on.
func (c Config) Validate() error {
	if c.BaseDir == "" {
		return errors.New("base dir is not set (use --base-dir or base_dir in the config file)")
	}
	info, err := os.Stat(c.BaseDir)
	if err != nil {
		return fmt.Errorf("base dir %s: %w", c.BaseDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base dir %s is not a directory", c.BaseDir)
	}

	var problems []string
	if c.ShellCmdFlag == "" {
		problems = append(problems, "shell command flag is empty")
	}
	if c.GitRemoteName == "" {
		problems = append(problems, "git remote name is empty")
	}
	if c.GitUpstreamBranch == "" {
		problems = append(problems, "git upstream branch is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ExpandPath expands a leading ~ and $VARS, then makes the path absolute.
func ExpandPath(path string, getenv func(string) string) (string, error) {
	path = os.Expand(path, getenv)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home := getenv("HOME")
		if home == "" {
			var err error
			if home, err = os.UserHomeDir(); err != nil {
				return "", fmt.Errorf("expanding %s: %w", path, err)
			}
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
